package cli

import (
	flag "github.com/spf13/pflag"
)

const (
	FlagTypeArgs       = "type-args"
	FlagArgs           = "args"
	FlagSender         = "sender"
	FlagSequenceNumber = "sequence-number"
	FlagPrivateKey     = "private-key"
	FlagPublicKeys     = "public-keys"
	FlagThreshold      = "threshold"
	FlagManifest       = "manifest"
	FlagSigner         = "signer"
	FlagOutput         = "output"
	FlagHome           = "home"
	FlagRecover        = "recover"
	FlagHDPath         = "hd-path"
)

const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// FlagSetArgs Returns the FlagSet for args related operations.
func FlagSetArgs() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(FlagArgs, "", `The arguments for move functions as a JSON array.
ex) '["address:0x1", "bool:true", "u8:0x01", "u128:1234", "vector<u32>:1,2,3"]'`)
	return fs
}

// FlagSetTypeArgs Returns the FlagSet for type args related operations.
func FlagSetTypeArgs() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(FlagTypeArgs, "", `The type arguments for move functions as a JSON array.
ex) '["0x1::TestCoin::TestCoin", "vector<u8>"]'`)
	return fs
}

// FlagSetTxFields Returns the FlagSet for the raw transaction fields supplied
// by the caller.
func FlagSetTxFields() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(FlagSender, "", "The sender address, defaults to the address of the signing key")
	fs.Uint64(FlagSequenceNumber, 0, "The current sequence number of the sender account")
	return fs
}

// FlagSetMultisig Returns the FlagSet describing a multi signature key.
func FlagSetMultisig() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringSlice(FlagPublicKeys, nil, "The hex encoded member public keys, in order")
	fs.Uint8(FlagThreshold, 0, "The number of member signatures required")
	fs.String(FlagManifest, "", "A TOML file holding the member public keys and the threshold")
	return fs
}

// FlagSetOutput Returns the FlagSet for the output format.
func FlagSetOutput() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringP(FlagOutput, "o", OutputFormatText, "Output format (text|json)")
	return fs
}
