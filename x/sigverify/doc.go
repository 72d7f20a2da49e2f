/*
Package sigverify implements the signature verification programs and the
binary codec of the instructions they process.

A verification instruction carries a batch of (identity, message, signature)
entries. Its data starts with a count byte followed by a table of fixed size
rows. Each row points into the trailing data section where the raw
signatures, identities and messages are stored. Two layouts are supported,
one for ed25519 keys and one for secp256k1 signatures that are checked
against an ethereum address:

	ed25519
	offset 0:        count (1 byte)
	offset 1:        padding (1 byte, 0)
	offset 2 + 14*i: sig_offset(u16) sig_ix(u16=0xFFFF)
	                 key_offset(u16) key_ix(u16=0xFFFF)
	                 msg_offset(u16) msg_len(u16) msg_ix(u16=0xFFFF)
	data:            [signatures 64*N][public keys 32*N][messages]

	secp256k1
	offset 0:        count (1 byte)
	offset 1 + 11*i: sig_offset(u16) sig_ix(u8=0)
	                 addr_offset(u16) addr_ix(u8=0)
	                 msg_offset(u16) msg_len(u16) msg_ix(u8=0)
	data:            [addresses 20*N][signatures with recovery id 65*N][messages]

All integers are little endian. The index fields must always hold the
sentinel value that references the instruction itself.

A verification program fails the whole transaction if any of the entries
does not verify. Other programs of the same transaction can therefore decode
the verification instruction and trust every entry it contains.
*/
package sigverify
