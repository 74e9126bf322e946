package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alphabill-org/hashchain/codec"
	"github.com/alphabill-org/hashchain/logger"
	"github.com/alphabill-org/hashchain/types"
)

type decodeConfig struct {
	base   *baseConfiguration
	file   string
	verify bool
	chain  bool
	format string
}

func newDecodeCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &decodeConfig{base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "decode",
		Short: "Decodes block (or chain) and prints it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return decodeRunFun(cmd, config)
		},
	}
	cmd.Flags().StringVarP(&config.file, "file", "f", "", "file to decode, when not set input is read from stdin")
	cmd.Flags().BoolVar(&config.verify, "verify", false, "verify hashes of the decoded blocks and transactions")
	cmd.Flags().BoolVar(&config.chain, "chain", false, "input is a chain (JSON array of blocks)")
	cmd.Flags().StringVar(&config.format, flagNameFormat, formatJSON, "encoding format of a single block, one of: json, cbor")
	return cmd
}

func decodeRunFun(cmd *cobra.Command, config *decodeConfig) error {
	data, err := readInput(cmd, config.file)
	if err != nil {
		return err
	}

	if config.chain {
		if config.format != formatJSON {
			return fmt.Errorf("chain can be decoded only from %s", formatJSON)
		}
		c, err := codec.DecodeChain(string(data), config.base.chainOptions()...)
		if err != nil {
			return fmt.Errorf("decoding chain: %w", err)
		}
		if config.verify {
			if err := c.Verify(cmd.Context()); err != nil {
				return fmt.Errorf("verifying chain: %w", err)
			}
		}
		printBlocks(c.Snapshot())
		consoleWriter.Printf("Decoded chain of %d blocks\n", c.Len())
		return nil
	}

	var b *types.Block
	switch config.format {
	case formatJSON:
		b, err = codec.Decode(string(data))
	case formatCBOR:
		b, err = codec.UnmarshalBinary(data)
	default:
		return fmt.Errorf("unsupported format %q", config.format)
	}
	if err != nil {
		return fmt.Errorf("decoding block: %w", err)
	}
	if config.verify {
		if err := b.Verify(); err != nil {
			config.base.logger.Warn("decoded block failed verification", logger.Index(uint64(b.Index)), logger.Error(err))
			return fmt.Errorf("verifying block: %w", err)
		}
	}
	printBlock(b)
	return nil
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	// #nosec G304
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	return data, nil
}
