/*
Package x holds the extensions of the application and the authentication
helpers they share.

Every sub-package is a program or a decorator that can be registered in the
application router. Programs learn who authorized an instruction through an
Authenticator, which combines the signers of the transaction envelope with
the authorities of calls forwarded by other programs.
*/
package x
