/*
Package multisig implements a stateless threshold multisig.

Owners do not submit approvals on chain. They sign a digest of the call
off-chain (see BuildDigest) and a single transaction carries both the
signatures and the call:

	[0] ed25519_verify or secp256k1_verify instruction with all signatures
	[1] multisig execute instruction

The verification program checks the signatures before the execute
instruction runs. The execute handler reads the verified entries of the
preceding instruction, recomputes the digest from its own parameters and
requires that enough distinct owners signed exactly that digest. The config
nonce must match and is incremented on success, so an approved call can be
executed only once.

The approved call is forwarded with the derived authority of the config. The
authority address has no key. It is only granted through the multisig
Authenticator while a forwarded call is processed.

An Initializer can create configs from the genesis file.
*/
package multisig
