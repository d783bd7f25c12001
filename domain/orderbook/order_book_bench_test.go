package orderbook

import "testing"

func BenchmarkPlaceResting(b *testing.B) {
	book := NewOrderBook()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		o, _ := NewOrder(OrderID(i), "AAPL", Price(i%1024), 10, Bid, GoodTilCanceled)
		book.PlaceOrder(o)
	}
}

func BenchmarkPlaceAndMatch(b *testing.B) {
	book := NewOrderBook()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		bid, _ := NewOrder(OrderID(2*i), "AAPL", 100, 10, Bid, GoodTilCanceled)
		book.PlaceOrder(bid)
		ask, _ := NewOrder(OrderID(2*i+1), "AAPL", 100, 10, Ask, GoodTilCanceled)
		book.PlaceOrder(ask)
	}
}

func BenchmarkCancel(b *testing.B) {
	book := NewOrderBook()
	for i := 0; i < b.N; i++ {
		o, _ := NewOrder(OrderID(i), "AAPL", Price(i%1024), 10, Bid, GoodTilCanceled)
		book.PlaceOrder(o)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		book.CancelOrder(OrderID(i))
	}
}
