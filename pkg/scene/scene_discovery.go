package scene

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Scene types
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

// SceneFileExt is the extension of scene description files
const SceneFileExt = ".scene"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name accepted by -scene
	Name        string // Display name
	Description string // Optional description
	Type        string // TypeBuiltin or TypeFile
	FilePath    string // Path to the scene file (file type only)
}

// builtinScenes lists the scenes compiled into the binary
var builtinScenes = []SceneInfo{
	{
		ID:          "spheres",
		Name:        "Random Spheres",
		Description: "70 random mirror and diffuse spheres on a ground sphere",
		Type:        TypeBuiltin,
	},
	{
		ID:          "simple",
		Name:        "Simple",
		Description: "Diffuse sphere between two mirrors",
		Type:        TypeBuiltin,
	},
}

// BuiltinScenes returns the scenes compiled into the binary
func BuiltinScenes() []SceneInfo {
	return append([]SceneInfo(nil), builtinScenes...)
}

// ListSceneFiles scans dir for scene description files. A missing
// directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+SceneFileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads "# Scene:" and "# Description:" header comments
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     TypeFile,
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Metadata ends at the first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if name, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.Name = strings.TrimSpace(name)
		} else if description, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(description)
		}
	}

	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}
	return append(BuiltinScenes(), files...), nil
}

// Load builds the scene named by id: a built-in scene name or a path to a
// scene description file
func Load(id string) (*Scene, error) {
	switch id {
	case "spheres":
		return NewRandomSpheresScene(rand.New(rand.NewSource(time.Now().UnixNano())))
	case "simple":
		return NewSimpleScene()
	}

	if strings.HasSuffix(id, SceneFileExt) {
		return LoadFileScene(id)
	}
	return nil, fmt.Errorf("unknown scene '%s': use a built-in name or a %s file", id, SceneFileExt)
}

// titleCase turns a file name such as "three-spheres" into "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
