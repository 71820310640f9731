package tx

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/crypto/ed25519"
	"github.com/initia-labs/movetx/crypto/multied25519"
	"github.com/initia-labs/movetx/types"
)

// TransactionAuthenticator variant indexes
const (
	authenticatorEd25519 uint32 = iota
	authenticatorMultiEd25519
)

// Authenticator proves that the owner of the sender account authorized a
// signing message.
type Authenticator interface {
	bcs.Marshaler

	// Verify checks the authenticator against a signing message.
	Verify(msg []byte) error
	// AuthKey returns the authentication key of the public key material.
	AuthKey() types.AuthenticationKey

	isAuthenticator()
}

var (
	_ Authenticator = Ed25519Authenticator{}
	_ Authenticator = MultiEd25519Authenticator{}
)

// Ed25519Authenticator is a single key authenticator.
type Ed25519Authenticator struct {
	PublicKey ed25519.PubKey
	Signature ed25519.Signature
}

// NewEd25519Authenticator pairs a public key with its signature.
func NewEd25519Authenticator(pubKey ed25519.PubKey, sig ed25519.Signature) Ed25519Authenticator {
	return Ed25519Authenticator{PublicKey: pubKey, Signature: sig}
}

func (Ed25519Authenticator) isAuthenticator() {}

func (a Ed25519Authenticator) Verify(msg []byte) error {
	if !a.PublicKey.VerifySignature(msg, a.Signature) {
		return errorsmod.Wrap(ErrVerificationFailed, "invalid ed25519 signature")
	}

	return nil
}

func (a Ed25519Authenticator) AuthKey() types.AuthenticationKey {
	return a.PublicKey.AuthKey()
}

func (a Ed25519Authenticator) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(authenticatorEd25519); err != nil {
		return err
	}
	if err := a.PublicKey.MarshalBCS(s); err != nil {
		return err
	}

	return a.Signature.MarshalBCS(s)
}

// MultiEd25519Authenticator is a k-of-n threshold authenticator.
type MultiEd25519Authenticator struct {
	PublicKey multied25519.PubKey
	Signature multied25519.Signature
}

// NewMultiEd25519Authenticator checks that sig reaches the quorum of pubKey and
// names only its members before pairing them.
func NewMultiEd25519Authenticator(pubKey multied25519.PubKey, sig multied25519.Signature) (MultiEd25519Authenticator, error) {
	if err := pubKey.CheckQuorum(&sig); err != nil {
		return MultiEd25519Authenticator{}, err
	}

	return MultiEd25519Authenticator{PublicKey: pubKey, Signature: sig}, nil
}

func (MultiEd25519Authenticator) isAuthenticator() {}

func (a MultiEd25519Authenticator) Verify(msg []byte) error {
	if err := a.PublicKey.Verify(msg, &a.Signature); err != nil {
		return errorsmod.Wrap(ErrVerificationFailed, err.Error())
	}

	return nil
}

func (a MultiEd25519Authenticator) AuthKey() types.AuthenticationKey {
	return a.PublicKey.AuthKey()
}

// MarshalBCS refuses authenticators below the quorum of their key, so no
// envelope can carry one.
func (a MultiEd25519Authenticator) MarshalBCS(s *bcs.Serializer) error {
	if err := a.PublicKey.CheckQuorum(&a.Signature); err != nil {
		return err
	}
	if err := s.SerializeVariantIndex(authenticatorMultiEd25519); err != nil {
		return err
	}
	if err := a.PublicKey.MarshalBCS(s); err != nil {
		return err
	}

	return a.Signature.MarshalBCS(s)
}

type authenticatorBox struct {
	Authenticator
}

func (b *authenticatorBox) UnmarshalBCS(d *bcs.Deserializer) error {
	variant, err := d.DeserializeVariantIndex()
	if err != nil {
		return err
	}

	switch variant {
	case authenticatorEd25519:
		var a Ed25519Authenticator
		if err := a.PublicKey.UnmarshalBCS(d); err != nil {
			return err
		}
		if err := a.Signature.UnmarshalBCS(d); err != nil {
			return err
		}
		b.Authenticator = a
	case authenticatorMultiEd25519:
		var a MultiEd25519Authenticator
		if err := a.PublicKey.UnmarshalBCS(d); err != nil {
			return err
		}
		if err := a.Signature.UnmarshalBCS(d); err != nil {
			return err
		}
		b.Authenticator = a
	default:
		return errorsmod.Wrapf(bcs.ErrMalformedInput, "unknown authenticator variant %d", variant)
	}

	return nil
}
