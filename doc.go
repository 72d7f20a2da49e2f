/*
Package weave defines the interfaces of the state machine: storage,
transactions built of program instructions, handlers and decorators,
queries and the context they all share.

A transaction is an ordered list of instructions. Each instruction names the
program that handles it, the accounts it touches and an opaque payload.
Handlers can inspect the other instructions of the same transaction through
InstructionAt, which is how a program learns what a signature verification
instruction submitted alongside it has checked.
*/
package weave
