package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by CreateScene
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to scene file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const (
	builtInGroup     = "Built-in Scenes"
	defaultFileGroup = "Scene Files"
)

// possibleScenesDirs are searched in order for scene files
var possibleScenesDirs = []string{"scenes", "../scenes"}

// findScenesDir returns the first scenes directory that exists, or ""
func findScenesDir() string {
	for _, path := range possibleScenesDirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans the scenes directory and returns discovered scene files
func ListJSONScenes() ([]SceneInfo, error) {
	scenesDir := findScenesDir()
	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}
	return listJSONScenesIn(scenesDir)
}

func listJSONScenesIn(scenesDir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// sceneMetadata is the subset of a scene file read for listing
type sceneMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// ParseSceneMetadata extracts the name, description and group of a scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	// Extract filename without extension for fallback values
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          "json:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       defaultFileGroup,
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}

	// Full validation happens on load; listing only needs the metadata
	var meta sceneMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return sceneInfo, err
	}

	if meta.Name != "" {
		sceneInfo.Name = meta.Name
		sceneInfo.DisplayName = titleCase(meta.Name)
	}
	sceneInfo.Description = meta.Description
	if meta.Group != "" {
		sceneInfo.Group = meta.Group
	}

	return sceneInfo, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListJSONScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	// Combine all scenes
	allScenes := append(builtInSceneInfos(), fileScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
