package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/alphabill-org/hashchain/chain"
	"github.com/alphabill-org/hashchain/codec"
	"github.com/alphabill-org/hashchain/logger"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newDemoCmd(config *baseConfiguration) *cobra.Command {
	var dump bool
	var cmd = &cobra.Command{
		Use:   "demo",
		Short: "Builds the sample chain, prints it and round trips the first block through the codec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return demoRunFun(config, dump)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the chain data structures")
	return cmd
}

func demoRunFun(config *baseConfiguration, dump bool) error {
	c, err := chain.NewSampleChain(config.clock, config.chainOptions()...)
	if err != nil {
		return fmt.Errorf("building sample chain: %w", err)
	}
	blocks := c.Snapshot()
	printBlocks(blocks)

	text, err := codec.Encode(blocks[0])
	if err != nil {
		return fmt.Errorf("encoding block 0: %w", err)
	}
	decoded, err := codec.VerifyDecoded(text)
	if err != nil {
		return fmt.Errorf("decoding block 0: %w", err)
	}
	config.logger.Debug("block round trip", logger.Index(uint64(decoded.Index)), logger.Hash(decoded.Hash), logger.Data(len(text)))
	if decoded.Hash != blocks[0].Hash {
		return fmt.Errorf("decoded block hash %s differs from the original %s", decoded.Hash, blocks[0].Hash)
	}
	consoleWriter.Println("Serialized block 0:")
	consoleWriter.Println(text)
	consoleWriter.Println("Deserialized block 0 matches the original")

	if dump {
		consoleWriter.Print(dumpConfig.Sdump(blocks))
	}
	return nil
}
