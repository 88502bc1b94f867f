package twophase

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	cube.Apply(twophase.R, twophase.U, twophase.RPrime, twophase.UPrime)
var (
	// Up face moves
	U      = Move{Face: FaceU, Turn: CW}
	UPrime = Move{Face: FaceU, Turn: CCW}
	U2     = Move{Face: FaceU, Turn: Double}

	// Right face moves
	R      = Move{Face: FaceR, Turn: CW}
	RPrime = Move{Face: FaceR, Turn: CCW}
	R2     = Move{Face: FaceR, Turn: Double}

	// Front face moves
	F      = Move{Face: FaceF, Turn: CW}
	FPrime = Move{Face: FaceF, Turn: CCW}
	F2     = Move{Face: FaceF, Turn: Double}

	// Down face moves
	D      = Move{Face: FaceD, Turn: CW}
	DPrime = Move{Face: FaceD, Turn: CCW}
	D2     = Move{Face: FaceD, Turn: Double}

	// Left face moves
	L      = Move{Face: FaceL, Turn: CW}
	LPrime = Move{Face: FaceL, Turn: CCW}
	L2     = Move{Face: FaceL, Turn: Double}

	// Back face moves
	B      = Move{Face: FaceB, Turn: CW}
	BPrime = Move{Face: FaceB, Turn: CCW}
	B2     = Move{Face: FaceB, Turn: Double}
)

// AllMoves lists the 18 face turns in U, R, F, D, L, B order.
var AllMoves = []Move{
	U, U2, UPrime, R, R2, RPrime, F, F2, FPrime,
	D, D2, DPrime, L, L2, LPrime, B, B2, BPrime,
}

// Sexy move: R U R' U' - one of the most common algorithms
var SexyMove = []Move{R, U, RPrime, UPrime}

// T-perm algorithm
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}

// Superflip flips every edge in place. It needs 20 moves.
var Superflip = []Move{
	U, R2, F, B, R, B2, R, U2, L, B2, R, UPrime, DPrime, R2, F, RPrime, L, B2, U2, F2,
}
