// Package dungeon generates the room layout of a dungeon.
//
// A layout is produced in stages, each exposed as a method on [Dungeon]:
//
//  1. GenerateRooms partitions the bounds with a seeded binary space
//     partition into rooms that share one cell of wall with their neighbours.
//  2. GenerateDoors places a door on every shared wall segment that is long
//     enough to hold one.
//  3. BuildGraph connects room centres to door positions in a
//     [graph.Graph] keyed by [geom.Vec2].
//  4. PurgeRooms and PurgeDoors prune the layout: the smallest rooms are
//     dropped while connectivity holds, and surplus doors are removed until
//     the rooms form a spanning tree.
//
// # Checkpoints
//
// Every stage returns an [iter.Seq] of [Step] values, one per unit of work
// (a split, a door, a graph node, a purge). Draining the sequence runs the
// stage to completion; a driver that pauses between steps observes the
// partial result on the Dungeon. Breaking out of the loop abandons the stage,
// and running it again starts from a clean slate.
//
// # Determinism
//
// A single PCG generator seeded from [Dungeon.Seed] backs GenerateRooms and
// GenerateDoors. Identical seed and parameters give identical rooms and
// doors.
//
// # Preconditions
//
// Stages that depend on an earlier stage return a PRECONDITION_FAILED
// [errors.Error] instead of a sequence when that stage has not completed.
//
// [errors.Error]: github.com/matzehuels/dungeonforge/pkg/errors.Error
package dungeon
