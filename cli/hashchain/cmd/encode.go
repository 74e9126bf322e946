package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alphabill-org/hashchain/chain"
	"github.com/alphabill-org/hashchain/codec"
	"github.com/alphabill-org/hashchain/types"
)

const (
	formatJSON = "json"
	formatCBOR = "cbor"

	flagNameFormat = "format"
	flagNameOutput = "output"
)

type encodeConfig struct {
	base   *baseConfiguration
	index  int
	all    bool
	format string
	output string
}

func newEncodeCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &encodeConfig{base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "encode",
		Short: "Encodes block (or all the blocks) of the sample chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return encodeRunFun(config)
		},
	}
	cmd.Flags().IntVar(&config.index, "index", 0, "index of the block to encode")
	cmd.Flags().BoolVar(&config.all, "all", false, "encode the whole chain")
	cmd.Flags().StringVar(&config.format, flagNameFormat, formatJSON, "encoding format, one of: json, cbor")
	cmd.Flags().StringVarP(&config.output, flagNameOutput, "o", "", "output file, when not set encoding is printed to console (CBOR as hex)")
	cmd.MarkFlagsMutuallyExclusive("index", "all")
	return cmd
}

func encodeRunFun(config *encodeConfig) error {
	c, err := chain.NewSampleChain(config.base.clock, config.base.chainOptions()...)
	if err != nil {
		return fmt.Errorf("building sample chain: %w", err)
	}

	var data []byte
	switch config.format {
	case formatJSON:
		var text string
		if config.all {
			text, err = codec.EncodeChain(c)
		} else {
			var b *types.Block
			if b, err = blockAt(c, config.index); err == nil {
				text, err = codec.Encode(b)
			}
		}
		data = []byte(text)
	case formatCBOR:
		if config.all {
			data, err = types.Cbor.Marshal(c.Snapshot())
		} else {
			var b *types.Block
			if b, err = blockAt(c, config.index); err == nil {
				data, err = codec.MarshalBinary(b)
			}
		}
	default:
		return fmt.Errorf("unsupported format %q", config.format)
	}
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	if config.output != "" {
		if err := os.WriteFile(config.output, data, 0600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		consoleWriter.Printf("Wrote %d bytes to %s\n", len(data), config.output)
		return nil
	}
	if config.format == formatCBOR {
		consoleWriter.Println(hex.EncodeToString(data))
	} else {
		consoleWriter.Println(string(data))
	}
	return nil
}

func blockAt(c *chain.Chain, index int) (*types.Block, error) {
	b, ok := c.Block(index)
	if !ok {
		return nil, fmt.Errorf("block index %d out of range, chain has %d blocks", index, c.Len())
	}
	return b, nil
}
