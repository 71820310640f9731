package tx

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"golang.org/x/sync/errgroup"

	"github.com/initia-labs/movetx/crypto/ed25519"
	"github.com/initia-labs/movetx/crypto/multied25519"
)

//go:generate mockgen -source=signer.go -destination=mock_signer_test.go -package=tx

var _ PartialSigner = ed25519.PrivKey{}

// PartialSigner produces one member signature of a multi signature.
type PartialSigner interface {
	PubKey() ed25519.PubKey
	Sign(msg []byte) (ed25519.Signature, error)
}

// IndexedSigner is a PartialSigner together with its member index.
type IndexedSigner struct {
	Index  uint8
	Signer PartialSigner
}

// CollectSignatures signs msg with every signer in parallel. Every signature is
// checked against its signer's public key, and the first failure cancels the
// remaining signers.
func CollectSignatures(ctx context.Context, msg []byte, signers ...IndexedSigner) ([]multied25519.IndexedSignature, error) {
	sigs := make([]multied25519.IndexedSignature, len(signers))

	g, ctx := errgroup.WithContext(ctx)
	for i, signer := range signers {
		i, signer := i, signer
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			sig, err := signer.Signer.Sign(msg)
			if err != nil {
				return errorsmod.Wrapf(ErrSigningFailed, "member %d: %s", signer.Index, err)
			}
			if !signer.Signer.PubKey().VerifySignature(msg, sig) {
				return errorsmod.Wrapf(ErrSigningFailed, "member %d returned an invalid signature", signer.Index)
			}

			sigs[i] = multied25519.IndexedSignature{Index: signer.Index, Signature: sig}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sigs, nil
}

// SignFuncFromSigners adapts local signers into a SignFunc for MultiEd25519Builder.
func SignFuncFromSigners(ctx context.Context, signers ...IndexedSigner) SignFunc {
	return func(signingMessage []byte) ([]multied25519.IndexedSignature, error) {
		return CollectSignatures(ctx, signingMessage, signers...)
	}
}
