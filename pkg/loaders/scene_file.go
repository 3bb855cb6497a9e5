package loaders

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sdeu/go-rt/pkg/core"
)

// Material kinds accepted by the Material directive
const (
	MaterialDiffuse  = "diffuse"
	MaterialSpecular = "specular"
)

// MaterialDef is a named material declared in a scene file
type MaterialDef struct {
	Name   string
	Kind   string // MaterialDiffuse or MaterialSpecular
	Albedo core.Vec3
}

// SphereDef is a sphere placed by translation
type SphereDef struct {
	Radius   float64
	Center   core.Vec3
	Material string // Name of a MaterialDef
	Line     int    // Source line of the directive
}

// SceneFile contains all parsed scene file data
type SceneFile struct {
	LookAt   *core.Vec3 // Eye position
	LookAtTo *core.Vec3 // Look at target
	LookAtUp *core.Vec3 // Up vector
	Fov      float64    // Vertical field of view in degrees (0 = unset)

	// Sampling holds the overrides given by Film and Gamma. Zero fields
	// were not set.
	Sampling core.SamplingConfig

	MaxDepth *int     // Set by MaxDepth, 0 is a valid depth
	Epsilon  *float64 // Set by Epsilon, 0 disables the origin offset

	Materials []MaterialDef
	Spheres   []SphereDef
}

// Material returns the material declared under name
func (s *SceneFile) Material(name string) (MaterialDef, bool) {
	for _, m := range s.Materials {
		if m.Name == name {
			return m, true
		}
	}
	return MaterialDef{}, false
}

// token is a single whitespace-separated word and the line it came from
type token struct {
	text string
	line int
}

// sceneFileParser walks the token stream one directive at a time
type sceneFileParser struct {
	tokens []token
	pos    int
	scene  *SceneFile
}

// ParseSceneFile parses a scene description from an io.Reader.
// Directives may span lines; '#' starts a comment that runs to end of line.
func ParseSceneFile(reader io.Reader) (*SceneFile, error) {
	tokens, err := tokenizeSceneFile(reader)
	if err != nil {
		return nil, err
	}

	parser := &sceneFileParser{
		tokens: tokens,
		scene:  &SceneFile{},
	}
	for parser.pos < len(parser.tokens) {
		if err := parser.parseDirective(); err != nil {
			return nil, err
		}
	}

	return parser.scene, nil
}

// LoadSceneFile loads and parses a scene description file
func LoadSceneFile(filename string) (*SceneFile, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}

	file, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scene, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scene, nil
}

// tokenizeSceneFile splits the input into tokens, dropping comments
func tokenizeSceneFile(reader io.Reader) ([]token, error) {
	var tokens []token

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, field := range strings.Fields(line) {
			tokens = append(tokens, token{text: field, line: lineNumber})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return tokens, nil
}

func (p *sceneFileParser) parseDirective() error {
	directive := p.tokens[p.pos]
	p.pos++

	switch directive.text {
	case "LookAt":
		return p.parseLookAt(directive)
	case "Fov":
		return p.parseFov(directive)
	case "Film":
		return p.parseFilm(directive)
	case "MaxDepth":
		depth, err := p.int(directive, "depth")
		if err != nil {
			return err
		}
		if depth < 0 {
			return p.errorf(directive, "depth must not be negative, got %d", depth)
		}
		p.scene.MaxDepth = &depth
	case "Gamma":
		gamma, err := p.float(directive, "gamma")
		if err != nil {
			return err
		}
		if gamma <= 0 {
			return p.errorf(directive, "gamma must be positive, got %g", gamma)
		}
		p.scene.Sampling.Gamma = gamma
	case "Epsilon":
		epsilon, err := p.float(directive, "epsilon")
		if err != nil {
			return err
		}
		if epsilon < 0 {
			return p.errorf(directive, "epsilon must not be negative, got %g", epsilon)
		}
		p.scene.Epsilon = &epsilon
	case "Material":
		return p.parseMaterial(directive)
	case "Sphere":
		return p.parseSphere(directive)
	default:
		return fmt.Errorf("line %d: unknown directive '%s'", directive.line, directive.text)
	}

	return nil
}

// parseLookAt reads eye, target and up: 9 numbers
func (p *sceneFileParser) parseLookAt(directive token) error {
	eye, err := p.vec3(directive, "eye")
	if err != nil {
		return err
	}
	target, err := p.vec3(directive, "look-at")
	if err != nil {
		return err
	}
	up, err := p.vec3(directive, "up")
	if err != nil {
		return err
	}

	if eye == target {
		return p.errorf(directive, "eye and target coincide at %v", eye)
	}
	if up == (core.Vec3{}) {
		return p.errorf(directive, "up vector must not be zero")
	}

	p.scene.LookAt = &eye
	p.scene.LookAtTo = &target
	p.scene.LookAtUp = &up
	return nil
}

func (p *sceneFileParser) parseFov(directive token) error {
	fov, err := p.float(directive, "field of view")
	if err != nil {
		return err
	}
	if fov <= 0 || fov >= 180 {
		return p.errorf(directive, "field of view must be in (0, 180) degrees, got %g", fov)
	}
	p.scene.Fov = fov
	return nil
}

// parseFilm reads width, height and samples per pixel
func (p *sceneFileParser) parseFilm(directive token) error {
	width, err := p.int(directive, "width")
	if err != nil {
		return err
	}
	height, err := p.int(directive, "height")
	if err != nil {
		return err
	}
	samples, err := p.int(directive, "samples")
	if err != nil {
		return err
	}

	if width <= 0 || height <= 0 {
		return p.errorf(directive, "invalid film size %dx%d", width, height)
	}
	if samples <= 0 {
		return p.errorf(directive, "samples must be positive, got %d", samples)
	}

	p.scene.Sampling.Width = width
	p.scene.Sampling.Height = height
	p.scene.Sampling.SamplesPerPixel = samples
	return nil
}

// parseMaterial reads a name, a kind and an albedo
func (p *sceneFileParser) parseMaterial(directive token) error {
	name, err := p.next(directive, "name")
	if err != nil {
		return err
	}
	kind, err := p.next(directive, "kind")
	if err != nil {
		return err
	}
	albedo, err := p.vec3(directive, "albedo")
	if err != nil {
		return err
	}

	if kind.text != MaterialDiffuse && kind.text != MaterialSpecular {
		return p.errorf(directive, "unknown material kind '%s' (want %s or %s)", kind.text, MaterialDiffuse, MaterialSpecular)
	}
	if _, exists := p.scene.Material(name.text); exists {
		return p.errorf(directive, "material '%s' already defined", name.text)
	}
	if albedo.X < 0 || albedo.Y < 0 || albedo.Z < 0 {
		return p.errorf(directive, "albedo must not be negative, got %v", albedo)
	}

	p.scene.Materials = append(p.scene.Materials, MaterialDef{
		Name:   name.text,
		Kind:   kind.text,
		Albedo: albedo,
	})
	return nil
}

// parseSphere reads a radius, a center and a material name
func (p *sceneFileParser) parseSphere(directive token) error {
	radius, err := p.float(directive, "radius")
	if err != nil {
		return err
	}
	center, err := p.vec3(directive, "center")
	if err != nil {
		return err
	}
	materialName, err := p.next(directive, "material")
	if err != nil {
		return err
	}

	if radius <= 0 {
		return p.errorf(directive, "radius must be positive, got %g", radius)
	}

	p.scene.Spheres = append(p.scene.Spheres, SphereDef{
		Radius:   radius,
		Center:   center,
		Material: materialName.text,
		Line:     directive.line,
	})
	return nil
}

// next consumes one argument of directive
func (p *sceneFileParser) next(directive token, what string) (token, error) {
	if p.pos >= len(p.tokens) {
		return token{}, p.errorf(directive, "missing %s at end of file", what)
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, nil
}

func (p *sceneFileParser) float(directive token, what string) (float64, error) {
	tok, err := p.next(directive, what)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(tok.text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, p.errorf(directive, "invalid %s '%s' at line %d, token %d", what, tok.text, tok.line, p.pos)
	}
	return value, nil
}

func (p *sceneFileParser) int(directive token, what string) (int, error) {
	tok, err := p.next(directive, what)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(tok.text)
	if err != nil {
		return 0, p.errorf(directive, "invalid %s '%s' at line %d, token %d", what, tok.text, tok.line, p.pos)
	}
	return value, nil
}

func (p *sceneFileParser) vec3(directive token, what string) (core.Vec3, error) {
	var v [3]float64
	for i, axis := range []string{"X", "Y", "Z"} {
		value, err := p.float(directive, what+" "+axis)
		if err != nil {
			return core.Vec3{}, err
		}
		v[i] = value
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

// errorf prefixes an error with the directive and where it started
func (p *sceneFileParser) errorf(directive token, format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s: %s", directive.line, directive.text, fmt.Sprintf(format, args...))
}
