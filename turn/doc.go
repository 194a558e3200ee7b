// Package turn enforces the two-turn discipline of tokens.
//
// Every token moves in at most two turns: the first from its starting stack
// to a hallway cell (or straight home), the second from that hallway cell to
// its destination stack. A turn is a maximal run of moves by the same token;
// within a turn the token may hop through any number of cells.
//
// The discipline is a per-token state machine (see board.State):
//
//	Activate:   NotStarted, Active -> Active
//	            Locked, Final      -> Final
//	            Done               -> ErrTerminal
//	Deactivate: at destination     -> Done
//	            Active at hallway  -> Locked
//	            otherwise          -> invalid
//
// Begin applies the machine to a board ahead of each move: a move from the
// slot where the previous move ended continues the turn; any other move first
// deactivates the previous mover and then activates the new one.
//
// Compose groups a flat list of priced steps into turns, and Replay/Play
// re-execute turns on a board, verifying every hop with movegen.Legal.
package turn
