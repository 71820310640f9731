package config

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

const (
	// DefaultMaxGasAmount - default gas budget of a transaction
	DefaultMaxGasAmount = uint64(1_000)
	// DefaultGasUnitPrice - default price of a gas unit
	DefaultGasUnitPrice = uint64(1)
	// DefaultExpiration - default lifetime of a transaction
	DefaultExpiration = 10 * time.Second
)

const (
	FlagChainID      = "tx.chain-id"
	FlagMaxGasAmount = "tx.max-gas-amount"
	FlagGasUnitPrice = "tx.gas-unit-price"
	FlagExpiration   = "tx.expiration"
)

// Options is the source config values are read from, e.g. a viper instance.
type Options interface {
	Get(string) interface{}
}

// TxConfig holds the chain metadata and gas parameters of new transactions.
type TxConfig struct {
	ChainID      uint8         `mapstructure:"chain-id"`
	MaxGasAmount uint64        `mapstructure:"max-gas-amount"`
	GasUnitPrice uint64        `mapstructure:"gas-unit-price"`
	Expiration   time.Duration `mapstructure:"expiration"`
}

// DefaultTxConfig returns the default settings for TxConfig
func DefaultTxConfig() TxConfig {
	return TxConfig{
		MaxGasAmount: DefaultMaxGasAmount,
		GasUnitPrice: DefaultGasUnitPrice,
		Expiration:   DefaultExpiration,
	}
}

// GetConfig load config values from the options
func GetConfig(opts Options) TxConfig {
	return TxConfig{
		ChainID:      cast.ToUint8(opts.Get(FlagChainID)),
		MaxGasAmount: cast.ToUint64(opts.Get(FlagMaxGasAmount)),
		GasUnitPrice: cast.ToUint64(opts.Get(FlagGasUnitPrice)),
		Expiration:   cast.ToDuration(opts.Get(FlagExpiration)),
	}
}

// Validate checks that a transaction built from the config can be executed.
func (c TxConfig) Validate() error {
	if c.ChainID == 0 {
		return errors.New("chain id must be set")
	}
	if c.MaxGasAmount == 0 {
		return errors.New("max gas amount must be positive")
	}
	if c.Expiration <= 0 {
		return errors.New("expiration must be positive")
	}

	return nil
}

// ExpirationTimestampSecs returns the expiration of a transaction built at now.
func (c TxConfig) ExpirationTimestampSecs(now time.Time) uint64 {
	return uint64(now.Add(c.Expiration).Unix())
}

// AddConfigFlags registers the config flags on cmd.
func AddConfigFlags(cmd *cobra.Command) {
	cmd.Flags().Uint8(FlagChainID, 0, "Set the id of the chain the transaction is valid on")
	cmd.Flags().Uint64(FlagMaxGasAmount, DefaultMaxGasAmount, "Set the maximum gas the transaction may use")
	cmd.Flags().Uint64(FlagGasUnitPrice, DefaultGasUnitPrice, "Set the price paid per gas unit")
	cmd.Flags().Duration(FlagExpiration, DefaultExpiration, "Set how long the transaction stays valid")
}

// DefaultConfigTemplate default config template for transactions
const DefaultConfigTemplate = `
###############################################################################
###                         Transaction                                     ###
###############################################################################

[tx]
# The id of the chain transactions are built for.
chain-id = {{ .ChainID }}

# The maximum gas amount a transaction may use.
max-gas-amount = {{ .MaxGasAmount }}

# The price paid per gas unit.
gas-unit-price = {{ .GasUnitPrice }}

# How long a transaction stays valid after it was built.
expiration = "{{ .Expiration }}"
`

var configTemplate = template.Must(template.New("txConfigFileTemplate").Parse(DefaultConfigTemplate))

// WriteConfigFile renders config into path, creating the parent directory.
func WriteConfigFile(path string, config TxConfig) error {
	var buffer bytes.Buffer
	if err := configTemplate.Execute(&buffer, config); err != nil {
		return errors.Wrap(err, "failed to render config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}

	return errors.Wrapf(os.WriteFile(path, buffer.Bytes(), 0o600), "failed to write %s", path)
}
