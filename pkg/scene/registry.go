package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by CreateScene for names it cannot resolve
var ErrUnknownScene = errors.New("unknown scene")

type builtInScene struct {
	description string
	create      func() *Scene
}

var builtInScenes = map[string]builtInScene{
	"default": {
		description: "Single sphere in front of a sky gradient",
		create:      NewDefaultScene,
	},
	"two-spheres": {
		description: "Sphere resting on a large ground sphere",
		create:      NewTwoSpheresScene,
	},
	"spheregrid": {
		description: "10x10 grid of spheres on a ground sphere",
		create:      func() *Scene { return NewSphereGridScene(10) },
	},
}

// ListScenes returns the names of the built-in scenes, sorted
func ListScenes() []string {
	names := make([]string, 0, len(builtInScenes))
	for name := range builtInScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtInSceneInfos() []SceneInfo {
	var infos []SceneInfo
	for _, name := range ListScenes() {
		infos = append(infos, SceneInfo{
			ID:          name,
			Name:        name,
			DisplayName: titleCase(name),
			Description: builtInScenes[name].description,
			Group:       builtInGroup,
			Type:        "builtin",
		})
	}
	return infos
}

// CreateScene resolves a built-in scene name, a "json:<name>" ID from the
// scenes directory or a path to a .json scene file
func CreateScene(name string) (*Scene, error) {
	if builtIn, ok := builtInScenes[name]; ok {
		return builtIn.create(), nil
	}

	if id, ok := strings.CutPrefix(name, "json:"); ok {
		scenesDir := findScenesDir()
		if scenesDir == "" || id == "" || strings.ContainsAny(id, `/\`) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
		}
		return NewJSONScene(filepath.Join(scenesDir, id+".json"))
	}

	if strings.EqualFold(filepath.Ext(name), ".json") {
		return NewJSONScene(name)
	}

	return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownScene, name, strings.Join(ListScenes(), ", "))
}
