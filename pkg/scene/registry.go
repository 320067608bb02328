package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by New for an ID that names no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene and how to construct it
type SceneInfo struct {
	ID          string // Unique identifier
	DisplayName string // Human readable name
	Description string
	Group       string // Grouping category
	Build       func() (*Scene, error)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string
	Scenes []SceneInfo
}

const (
	groupOpen    = "Open Scenes"
	groupCornell = "Cornell Variants"
)

var builtInScenes = []SceneInfo{
	{ID: "sphere", Description: "Single diffuse sphere under the sky", Group: groupOpen, Build: NewSphereScene},
	{ID: "spheres", Description: "Diffuse, glass and red spheres on a brushed metal ground", Group: groupOpen, Build: NewSpheresScene},
	{ID: "motion", Description: "Bouncing spheres blurred over the shutter interval", Group: groupOpen, Build: NewMotionScene},
	{ID: "mesh", Description: "Triangle mesh octahedron on a checker floor", Group: groupOpen, Build: NewMeshScene},
	{ID: "cornell", Description: "Cornell box with a rectangular light and two boxes", Group: groupCornell, Build: NewCornellScene},
	{ID: "cornell-disk", Description: "Disk light and boxes rotated about y", Group: groupCornell, Build: NewCornellDiskScene},
	{ID: "cornell-rotated", Description: "Boxes tumbled about two axes", Group: groupCornell, Build: NewCornellRotatedScene},
	{ID: "cornell-microfacet", Description: "Glossy microfacet spheres and boxes under a polygon light", Group: groupCornell, Build: NewCornellMicrofacetScene},
	{ID: "pyramid", Description: "Rotated pyramid above tumbled boxes", Group: groupCornell, Build: NewPyramidScene},
	{ID: "shapes", Description: "Metal pyramid, cylinder and checkered sphere under a cylindrical lamp", Group: groupCornell, Build: NewShapesScene},
}

// ListScenes returns every built-in scene ordered by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	for i, info := range builtInScenes {
		if info.DisplayName == "" {
			info.DisplayName = titleCase(info.ID)
		}
		scenes[i] = info
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// ListSceneGroups returns the built-in scenes grouped by category, groups in alphabetical order
func ListSceneGroups() []SceneGroup {
	groupMap := make(map[string][]SceneInfo)
	for _, info := range ListScenes() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	groups := make([]SceneGroup, 0, len(groupNames))
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return groups
}

// New builds the built-in scene with the given ID
func New(id string) (*Scene, error) {
	for _, info := range builtInScenes {
		if info.ID == id {
			s, err := info.Build()
			if err != nil {
				return nil, fmt.Errorf("while building scene %q: %w", id, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// titleCase converts an ID to title case
// e.g., "cornell-disk" -> "Cornell Disk"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
