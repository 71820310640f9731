package tx

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/types"
)

// userTransactionVariant is the variant index of a user transaction in the
// chain's Transaction enum, hashed in front of the envelope.
const userTransactionVariant = 0x00

var (
	_ bcs.Marshaler   = SignedTransaction{}
	_ bcs.Unmarshaler = (*SignedTransaction)(nil)
)

// SignedTransaction is the envelope submitted to the chain.
type SignedTransaction struct {
	RawTxn        RawTransaction
	Authenticator Authenticator
}

func (stx SignedTransaction) MarshalBCS(s *bcs.Serializer) error {
	if stx.Authenticator == nil {
		return ErrMissingAuthenticator
	}
	if err := stx.RawTxn.MarshalBCS(s); err != nil {
		return err
	}

	return s.Serialize(stx.Authenticator)
}

func (stx *SignedTransaction) UnmarshalBCS(d *bcs.Deserializer) error {
	if err := stx.RawTxn.UnmarshalBCS(d); err != nil {
		return err
	}

	var auth authenticatorBox
	if err := d.Deserialize(&auth); err != nil {
		return err
	}

	stx.Authenticator = auth.Authenticator
	return nil
}

// Bytes returns the BCS encoded envelope.
func (stx SignedTransaction) Bytes() ([]byte, error) {
	return bcs.Marshal(stx)
}

// Hash returns the hash the chain indexes the transaction under.
func (stx SignedTransaction) Hash() (types.HashValue, error) {
	bz, err := stx.Bytes()
	if err != nil {
		return types.HashValue{}, err
	}

	return Hash(bz), nil
}

// Verify re-derives the signing message of the raw transaction and checks the
// authenticator against it. The sender is not compared with the address
// derived from the authenticator's key.
func (stx SignedTransaction) Verify() error {
	if stx.Authenticator == nil {
		return errorsmod.Wrap(ErrVerificationFailed, "missing authenticator")
	}

	msg, err := stx.RawTxn.SigningMessage()
	if err != nil {
		return err
	}

	return stx.Authenticator.Verify(msg)
}

// BuildSignedEnvelope returns bcs(SignedTransaction{raw, auth}), the byte
// string handed to the transport for submission.
func BuildSignedEnvelope(raw RawTransaction, auth Authenticator) ([]byte, error) {
	return SignedTransaction{RawTxn: raw, Authenticator: auth}.Bytes()
}

// Hash returns sha3_256(sha3_256(TransactionSalt) | 0x00 | envelope).
func Hash(envelope []byte) types.HashValue {
	return types.Sha3Hash(transactionPrefix[:], []byte{userTransactionVariant}, envelope)
}

// DecodeSignedTransaction decodes an envelope produced by BuildSignedEnvelope.
func DecodeSignedTransaction(bz []byte) (SignedTransaction, error) {
	var stx SignedTransaction
	if err := bcs.Unmarshal(bz, &stx); err != nil {
		return SignedTransaction{}, err
	}

	return stx, nil
}
