package lexer

import "testing"

const benchmarkSource = `
class LinkedList {
  init() {
    this.head = nil;
    this.size = 0;
  }

  push(value) {
    var node = [value, this.head];
    this.head = node;
    this.size = this.size + 1;
  }
}

fun fib(n) {
  if (n <= 1) { return n; }
  return fib(n - 1) + fib(n - 2);
}

var list = LinkedList();
for (var i = 0; i < 20; i = i + 1) {
  list.push(fib(i));
}
`

func BenchmarkScanTokens(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		New(benchmarkSource, nil).ScanTokens()
	}
}
