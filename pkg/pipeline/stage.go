package pipeline

import (
	"strings"

	"github.com/matzehuels/dungeonforge/pkg/errors"
)

// Stage names one step of the generation pipeline.
type Stage string

const (
	StageGenerateRooms  Stage = "generate-rooms"
	StageGenerateDoors  Stage = "generate-doors"
	StageBuildGraph     Stage = "build-graph"
	StageSearchGraph    Stage = "search-graph"
	StagePurgeRooms     Stage = "purge-rooms"
	StagePurgeDoors     Stage = "purge-doors"
	StageRasterizeTiles Stage = "rasterize-tiles"
	StageFloodFill      Stage = "flood-fill"
)

// stageOrder is the order Execute runs stages in.
var stageOrder = []Stage{
	StageGenerateRooms,
	StageGenerateDoors,
	StageBuildGraph,
	StageSearchGraph,
	StagePurgeRooms,
	StagePurgeDoors,
	StageRasterizeTiles,
	StageFloodFill,
}

var stageInfo = map[Stage]struct {
	requires    Stage
	description string
}{
	StageGenerateRooms:  {"", "partition the bounds into rooms"},
	StageGenerateDoors:  {StageGenerateRooms, "place doors between adjacent rooms"},
	StageBuildGraph:     {StageGenerateDoors, "connect room centres through door nodes"},
	StageSearchGraph:    {StageBuildGraph, "breadth-first search from the first room"},
	StagePurgeRooms:     {StageBuildGraph, "drop small rooms while the rest stay connected"},
	StagePurgeDoors:     {StageBuildGraph, "reduce the doors to a spanning tree"},
	StageRasterizeTiles: {StageGenerateRooms, "draw walls and doors into the tile grid"},
	StageFloodFill:      {StageRasterizeTiles, "flood-fill walkable tiles into a graph"},
}

// Stages returns every stage in pipeline order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// ParseStage converts a stage name into a Stage.
func ParseStage(name string) (Stage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := errors.ValidateStageName(name); err != nil {
		return "", err
	}
	s := Stage(name)
	if _, ok := stageInfo[s]; !ok {
		return "", errors.New(errors.ErrCodeInvalidStage, "unknown stage %q", name)
	}
	return s, nil
}

// ParseStages parses a comma-separated stage list. An empty list means
// every stage.
func ParseStages(list string) ([]Stage, error) {
	if strings.TrimSpace(list) == "" {
		return Stages(), nil
	}
	var out []Stage
	for _, name := range strings.Split(list, ",") {
		s, err := ParseStage(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Requires returns the stage that must complete before s, or "" if none.
func (s Stage) Requires() Stage { return stageInfo[s].requires }

// Description returns a one-line summary of what the stage does.
func (s Stage) Description() string { return stageInfo[s].description }

func (s Stage) String() string { return string(s) }

// position returns the index of s in pipeline order.
func (s Stage) position() int {
	for i, o := range stageOrder {
		if o == s {
			return i
		}
	}
	return len(stageOrder)
}
