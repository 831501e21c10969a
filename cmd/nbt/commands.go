package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/nbt"
	"github.com/zoobzio/nbt/bson"
	"github.com/zoobzio/nbt/cbor"
	nbtjson "github.com/zoobzio/nbt/json"
	"github.com/zoobzio/nbt/msgpack"
	"github.com/zoobzio/nbt/nbtfile"
	nbtyaml "github.com/zoobzio/nbt/yaml"
)

// codecs maps --codec names to Serializable payload codecs.
var codecs = map[string]func() nbt.Codec{
	"msgpack": func() nbt.Codec { return msgpack.New() },
	"json":    func() nbt.Codec { return nbtjson.New() },
	"yaml":    func() nbt.Codec { return nbtyaml.New() },
	"cbor":    func() nbt.Codec { return cbor.New() },
	"bson":    func() nbt.Codec { return bson.New() },
}

func codecFlag(flagSet *pflag.FlagSet) *string {
	return flagSet.String("codec", "msgpack", "codec of Serializable payloads: msgpack, json, yaml, cbor or bson")
}

func readRoot(ctx context.Context, path, codecName string) (*nbt.CompoundTag, []nbt.Option, error) {
	newCodec, ok := codecs[codecName]
	if !ok {
		return nil, nil, fmt.Errorf("unknown codec %q", codecName)
	}
	opts := []nbt.Option{nbt.WithCodec(newCodec())}
	root, err := nbtfile.ReadFile(ctx, path, nbtfile.WithOptions(opts...))
	if err != nil {
		return nil, nil, err
	}
	return root, opts, nil
}

func dumpCommand(flagSet *pflag.FlagSet) func(context.Context, string, io.Writer) error {
	raw := flagSet.Bool("raw", false, "print the uncompressed tag stream as a hex dump")
	codecName := codecFlag(flagSet)

	return func(ctx context.Context, path string, out io.Writer) error {
		root, opts, err := readRoot(ctx, path, *codecName)
		if err != nil {
			return err
		}
		if *raw {
			var buf bytes.Buffer
			if err := nbt.Encode(ctx, &buf, root, opts...); err != nil {
				return err
			}
			_, err := io.WriteString(out, hex.Dump(buf.Bytes()))
			return err
		}
		_, err = fmt.Fprintln(out, root.String())
		return err
	}
}

func exportCommand(flagSet *pflag.FlagSet) func(context.Context, string, io.Writer) error {
	format := flagSet.String("format", "json", "output format: json or yaml")
	codecName := codecFlag(flagSet)

	return func(ctx context.Context, path string, out io.Writer) error {
		root, _, err := readRoot(ctx, path, *codecName)
		if err != nil {
			return err
		}
		value, err := nbt.ToValue(root)
		if err != nil {
			return err
		}
		doc := map[string]any{root.Name(): value}

		switch *format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return err
			}
			return enc.Close()
		}
		return fmt.Errorf("unknown format %q", *format)
	}
}

func hashCommand(flagSet *pflag.FlagSet) func(context.Context, string, io.Writer) error {
	algo := flagSet.String("algo", string(nbt.HashSHA256), "hash algorithm: sha256, sha512, blake2b or blake3")
	codecName := codecFlag(flagSet)

	return func(ctx context.Context, path string, out io.Writer) error {
		root, _, err := readRoot(ctx, path, *codecName)
		if err != nil {
			return err
		}
		sum, err := nbt.Fingerprint(ctx, root, nbt.HashAlgo(*algo))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s  %s\n", sum, path)
		return err
	}
}
