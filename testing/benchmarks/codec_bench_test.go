package benchmarks

import (
	"bytes"
	"context"
	"testing"

	"github.com/zoobzio/nbt"
	"github.com/zoobzio/nbt/cbor"
	"github.com/zoobzio/nbt/nbtfile"
	nbttest "github.com/zoobzio/nbt/testing"
)

func BenchmarkMarshal_Sample(b *testing.B) {
	root := nbttest.Sample()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = nbt.Marshal(context.Background(), root)
	}
}

func BenchmarkUnmarshal_Sample(b *testing.B) {
	data := nbttest.MustMarshal(b, nbttest.Sample())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = nbt.Unmarshal(context.Background(), data)
	}
}

func BenchmarkUnmarshal_Sample_CBOR(b *testing.B) {
	opts := []nbt.Option{nbt.WithCodec(cbor.New())}
	data := nbttest.MustMarshal(b, nbttest.Sample(), opts...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = nbt.Unmarshal(context.Background(), data, opts...)
	}
}

func BenchmarkWrite_Gzip(b *testing.B) {
	root := nbttest.Sample()
	var buf bytes.Buffer

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		_ = nbtfile.Write(context.Background(), &buf, root)
	}
}

func BenchmarkToValue_Sample(b *testing.B) {
	root := nbttest.Sample()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = nbt.ToValue(root)
	}
}

func BenchmarkStruct_ToTag(b *testing.B) {
	conv := nbt.NewConverters()
	if err := nbt.RegisterStruct[nbttest.Player](conv); err != nil {
		b.Fatal(err)
	}
	p := nbttest.Player{
		Name:      "alex",
		Inventory: []nbttest.Item{{ID: "stone", Count: 64}},
		Stats:     map[string]int32{"deaths": 2},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = conv.ToTag("player", p)
	}
}
