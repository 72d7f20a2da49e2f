/*
Package cash defines a simple implementation of sending coins
between wallets.

There is no logic in the coins (tokens), except that the balance
of any coin may not go below zero. Thus, this implementation is
referred to as cash. Simple and safe.

A wallet may belong to a key or to a derived address, such as the
authority of a multisig config. The send instruction only requires that
the source address is authenticated, whichever way that happened.
*/
package cash
