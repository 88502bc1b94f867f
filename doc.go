// Package twophase solves 3x3x3 cubes with the two-phase algorithm.
//
// # Quick Start
//
// Solve a cube given as a 54-sticker layout:
//
//	solver, err := twophase.NewSolver()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sol, err := solver.Solve("DRLUUBFBRBLURRLRUBLRDDFDLFUFUFFDBRDUBRUFLLFDDBFLUBLRBD")
//	if errors.Is(err, twophase.ErrNoSolution) {
//	    // retry with a larger WithMaxLength
//	}
//	fmt.Println(sol.Len(), sol)
//
// The layout lists the U, R, F, D, L and B faces in that order, nine stickers
// each, row by row. Any six distinct symbols may be used; the center of each
// face names its symbol.
//
// # Cube Simulation
//
// The Cube type tracks a cube state without any hardware:
//
//	cube := twophase.NewCube()
//	cube.Apply(twophase.R, twophase.U, twophase.RPrime, twophase.UPrime)
//	cube.ApplyNotation("F B2 L' D")
//
//	sol, err := solver.SolveCube(cube)
//
// # Tables
//
// The search needs about 5 MB of precomputed tables. DefaultTables builds them
// once per process on first use. Build them ahead of time with BuildTables, or
// persist them with (*Tables).WriteTo and ReadTables.
//
// # Smart Cubes
//
// Connect to a GoCube over Bluetooth and solve its live state:
//
//	cube, err := twophase.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cube.Close()
//
//	cube.OnMove(func(m twophase.Move) {
//	    fmt.Println("Move:", m.Notation())
//	})
//	sol, err := solver.SolveCube(cube.Cube())
package twophase
