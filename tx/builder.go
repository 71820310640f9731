package tx

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/initia-labs/movetx/crypto/ed25519"
	"github.com/initia-labs/movetx/crypto/multied25519"
)

// BuilderOption configures a transaction builder.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	logger log.Logger
}

func defaultBuilderOptions() builderOptions {
	return builderOptions{logger: log.NewNopLogger()}
}

// WithLogger sets the logger a builder reports signed transactions to.
func WithLogger(logger log.Logger) BuilderOption {
	return func(o *builderOptions) {
		o.logger = logger.With("module", ModuleName)
	}
}

func applyBuilderOptions(opts []BuilderOption) builderOptions {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Ed25519Builder signs raw transactions with a single key.
type Ed25519Builder struct {
	privKey ed25519.PrivKey
	logger  log.Logger
}

// NewEd25519Builder returns a builder signing with privKey.
func NewEd25519Builder(privKey ed25519.PrivKey, opts ...BuilderOption) *Ed25519Builder {
	o := applyBuilderOptions(opts)

	return &Ed25519Builder{
		privKey: privKey,
		logger:  o.logger,
	}
}

// Sign signs the signing message of raw and returns the envelope.
func (b *Ed25519Builder) Sign(raw RawTransaction) (*SignedTransaction, error) {
	msg, err := raw.SigningMessage()
	if err != nil {
		return nil, err
	}

	sig, err := b.privKey.Sign(msg)
	if err != nil {
		return nil, err
	}

	stx := &SignedTransaction{
		RawTxn:        raw,
		Authenticator: NewEd25519Authenticator(b.privKey.PubKey(), sig),
	}
	logSigned(b.logger, stx)

	return stx, nil
}

// SignFunc returns the member signatures over a signing message. It may return
// them in any order and for any subset of the members.
type SignFunc func(signingMessage []byte) ([]multied25519.IndexedSignature, error)

// MultiEd25519Builder signs raw transactions with a k-of-n multi key. The
// member signatures come from a caller supplied SignFunc, so keys can stay in
// external custody.
type MultiEd25519Builder struct {
	signFn SignFunc
	pubKey multied25519.PubKey
	logger log.Logger
}

// NewMultiEd25519Builder returns a builder for pubKey driven by signFn.
func NewMultiEd25519Builder(signFn SignFunc, pubKey multied25519.PubKey, opts ...BuilderOption) *MultiEd25519Builder {
	o := applyBuilderOptions(opts)

	return &MultiEd25519Builder{
		signFn: signFn,
		pubKey: pubKey,
		logger: o.logger,
	}
}

// Sign collects the member signatures over the signing message of raw and
// aggregates them. No envelope is produced below the threshold or when a
// signature does not verify under the member key at its index.
func (b *MultiEd25519Builder) Sign(raw RawTransaction) (*SignedTransaction, error) {
	msg, err := raw.SigningMessage()
	if err != nil {
		return nil, err
	}

	sigs, err := b.signFn(msg)
	if err != nil {
		return nil, err
	}

	sig, err := b.pubKey.Aggregate(sigs)
	if err != nil {
		return nil, err
	}
	if err := b.pubKey.Verify(msg, sig); err != nil {
		return nil, errorsmod.Wrap(ErrSigningFailed, err.Error())
	}

	auth, err := NewMultiEd25519Authenticator(b.pubKey, *sig)
	if err != nil {
		return nil, err
	}

	stx := &SignedTransaction{
		RawTxn:        raw,
		Authenticator: auth,
	}
	logSigned(b.logger, stx, "signers", sig.Bitmap().Indices())

	return stx, nil
}

func logSigned(logger log.Logger, stx *SignedTransaction, keyVals ...any) {
	hash, err := stx.Hash()
	if err != nil {
		return
	}

	logger.Debug(
		"signed transaction",
		append([]any{
			"sender", stx.RawTxn.Sender,
			"sequence", stx.RawTxn.SequenceNumber,
			"hash", hash,
		}, keyVals...)...,
	)
}
