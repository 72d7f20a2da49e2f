/*
Package batch runs the instructions of a transaction.

A transaction holds an ordered list of instructions. Each instruction is
passed down the stack separately, as a transaction carrying that single
instruction, in the order declared. The transaction fails if any of the
instructions fails to be processed.

While an instruction is processed, the context gives access to all
instructions of the transaction and the index of the current one (see
weave.InstructionAt). This allows a program to inspect what its siblings
were asked to do, for example to read the data a signature verification
program has already verified.

Note that envelope signatures, savepoints and other extensions that do not
rely on instructions are only applied once per transaction, which means that
the single instruction transactions don't hit that middleware.
*/
package batch
