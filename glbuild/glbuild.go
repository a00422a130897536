// Package glbuild generates the GLSL sources of the Phong lighting programs used to
// render the city and the uniform name paths used to configure them.
package glbuild

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// VersionStr is the GLSL version directive that starts every generated shader.
const VersionStr = "#version 330 core\n"

// Vertex attribute locations shared by every program. They match the field order of glcity.Vertex.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTexCoord = 2
)

// Material selects how the fragment shader obtains diffuse and specular colors.
type Material uint8

const (
	// MaterialTexture samples material.diffuse and material.specular as 2D textures
	// bound to the texture units stored in the sampler uniforms.
	MaterialTexture Material = iota
	// MaterialColor uses material.diffuse and material.specular as flat vec3 colors.
	MaterialColor
)

func (m Material) String() string {
	switch m {
	case MaterialTexture:
		return "texture"
	case MaterialColor:
		return "color"
	}
	return "unknown material"
}

var (
	//go:embed dirlight.glsl
	dirLightSrc []byte
	//go:embed pointlight.glsl
	pointLightSrc []byte
	//go:embed spotlight.glsl
	spotLightSrc []byte
)

// ShaderFunction is a GLSL function definition along with its parsed name.
type ShaderFunction struct {
	// Name of the function as called from GLSL.
	Name   []byte
	source []byte
}

// MakeShaderFunction parses the name of the GLSL function definition shaderDef.
func MakeShaderFunction(shaderDef []byte) (sf ShaderFunction, err error) {
	shaderDef = bytes.TrimSpace(shaderDef)
	fnNameEnd := bytes.IndexByte(shaderDef, '(')
	fnNameStart := bytes.IndexByte(shaderDef, ' ')
	if fnNameEnd < 0 || fnNameStart < 0 || fnNameStart > fnNameEnd {
		return ShaderFunction{}, errors.New("unable to parse function name")
	}
	name := bytes.TrimSpace(shaderDef[fnNameStart:fnNameEnd])
	if len(name) == 0 {
		return ShaderFunction{}, errors.New("empty function name")
	}
	return ShaderFunction{Name: name, source: shaderDef}, nil
}

// Programmer writes the vertex and fragment shaders of the lit programs.
type Programmer struct {
	// PointLights is the length of the pointLights uniform array. Must be at least 1.
	PointLights int
	scratch     []byte
	// names maps function name hashes to body hashes for checking duplicates.
	names map[uint64]uint64
}

// NewDefaultProgrammer returns a Programmer for a scene with a single point light.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		PointLights: 1,
		scratch:     make([]byte, 0, 2048),
		names:       make(map[uint64]uint64),
	}
}

// WriteVertex writes the vertex shader shared by both materials. It transforms positions
// by model, view and projection and passes world space position and normal to the
// fragment stage.
func (p *Programmer) WriteVertex(w io.Writer) (int, error) {
	b := append(p.scratch[:0], VersionStr...)
	b = appendAttribDecl(b, AttribPosition, "vec3", "aPos")
	b = appendAttribDecl(b, AttribNormal, "vec3", "aNormal")
	b = appendAttribDecl(b, AttribTexCoord, "vec2", "aTexCoords")
	b = append(b, `
out vec3 FragPos;
out vec3 Normal;
out vec2 TexCoords;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
	FragPos = vec3(model * vec4(aPos, 1.0));
	Normal = mat3(transpose(inverse(model))) * aNormal;
	TexCoords = aTexCoords;
	gl_Position = projection * view * vec4(FragPos, 1.0);
}
`...)
	p.scratch = b
	return w.Write(b)
}

// WriteFragment writes the fragment shader for the given material: one directional light,
// PointLights point lights and one spot light, summed per fragment.
func (p *Programmer) WriteFragment(w io.Writer, mat Material) (n int, err error) {
	if p.PointLights < 1 {
		return 0, errors.New("fragment shader requires at least one point light")
	}
	b := append(p.scratch[:0], VersionStr...)
	b = append(b, "out vec4 FragColor;\n"...)
	b = AppendDefineDecl(b, "NR_POINT_LIGHTS", strconv.Itoa(p.PointLights))
	switch mat {
	case MaterialTexture:
		b = append(b, "struct Material {\n\tsampler2D diffuse;\n\tsampler2D specular;\n\tfloat shininess;\n};\n"...)
	case MaterialColor:
		b = append(b, "struct Material {\n\tvec3 diffuse;\n\tvec3 specular;\n\tfloat shininess;\n};\n"...)
	default:
		return 0, fmt.Errorf("invalid material %d", mat)
	}
	b = append(b, lightStructs...)
	b = append(b, `
in vec3 FragPos;
in vec3 Normal;
in vec2 TexCoords;

uniform vec3 viewPos;
uniform DirLight dirLight;
uniform PointLight pointLights[NR_POINT_LIGHTS];
uniform SpotLight spotLight;
uniform Material material;

`...)
	b, err = p.AppendFunctions(b, dirLightSrc, pointLightSrc, spotLightSrc)
	if err != nil {
		return 0, err
	}
	b = append(b, "\nvoid main() {\n\tvec3 norm = normalize(Normal);\n\tvec3 viewDir = normalize(viewPos - FragPos);\n"...)
	if mat == MaterialTexture {
		b = append(b, "\tvec3 kd = vec3(texture(material.diffuse, TexCoords));\n\tvec3 ks = vec3(texture(material.specular, TexCoords));\n"...)
	} else {
		b = append(b, "\tvec3 kd = material.diffuse;\n\tvec3 ks = material.specular;\n"...)
	}
	b = append(b, `	vec3 result = calcDirLight(dirLight, norm, viewDir, kd, ks, material.shininess);
	for (int i = 0; i < NR_POINT_LIGHTS; i++) {
		result += calcPointLight(pointLights[i], norm, FragPos, viewDir, kd, ks, material.shininess);
	}
	result += calcSpotLight(spotLight, norm, FragPos, viewDir, kd, ks, material.shininess);
	FragColor = vec4(result, 1.0);
}
`...)
	p.scratch = b
	return w.Write(b)
}

const lightStructs = `
struct DirLight {
	vec3 direction;
	vec3 ambient;
	vec3 diffuse;
	vec3 specular;
};

struct PointLight {
	vec3 position;
	float constant;
	float linear;
	float quadratic;
	vec3 ambient;
	vec3 diffuse;
	vec3 specular;
};

struct SpotLight {
	vec3 position;
	vec3 direction;
	float cutOff;
	float outerCutOff;
	float constant;
	float linear;
	float quadratic;
	vec3 ambient;
	vec3 diffuse;
	vec3 specular;
};
`

// AppendFunctions appends each GLSL function definition in defs once. Identical definitions
// are skipped, distinct definitions sharing a name are an error. Each call starts a new set
// of names so it is used once per generated shader.
func (p *Programmer) AppendFunctions(b []byte, defs ...[]byte) ([]byte, error) {
	if p.names == nil {
		p.names = make(map[uint64]uint64)
	}
	clear(p.names)
	for _, def := range defs {
		fn, err := MakeShaderFunction(def)
		if err != nil {
			return b, err
		}
		nameHash := hash(fn.Name, 0)
		bodyHash := hash(fn.source, nameHash) // Body hash mixes name as well.
		gotBodyHash, nameConflict := p.names[nameHash]
		if nameConflict {
			if gotBodyHash == bodyHash {
				continue
			}
			return b, fmt.Errorf("duplicate shader function name %q with distinct body", fn.Name)
		}
		p.names[nameHash] = bodyHash
		b = append(b, fn.source...)
		b = append(b, '\n', '\n')
	}
	return b, nil
}

func appendAttribDecl(b []byte, location int, typename, name string) []byte {
	b = append(b, "layout (location = "...)
	b = strconv.AppendInt(b, int64(location), 10)
	b = append(b, ") in "...)
	b = append(b, typename...)
	b = append(b, ' ')
	b = append(b, name...)
	b = append(b, ";\n"...)
	return b
}

// UniformName returns the name path of a field of a struct uniform. A negative index
// addresses a plain struct ("spotLight.cutOff"), otherwise an array element
// ("pointLights[0].diffuse"). An empty field returns the struct or element itself.
func UniformName(base string, index int, field string) string {
	b := make([]byte, 0, len(base)+len(field)+8)
	return string(AppendUniformName(b, base, index, field))
}

// AppendUniformName appends the uniform name path built as described by [UniformName].
func AppendUniformName(b []byte, base string, index int, field string) []byte {
	b = append(b, base...)
	if index >= 0 {
		b = append(b, '[')
		b = strconv.AppendInt(b, int64(index), 10)
		b = append(b, ']')
	}
	if field != "" {
		b = append(b, '.')
		b = append(b, field...)
	}
	return b
}

// AppendDefineDecl appends a "#define aliasToDefine aliasReplace" line.
func AppendDefineDecl(b []byte, aliasToDefine, aliasReplace string) []byte {
	b = append(b, "#define "...)
	b = append(b, aliasToDefine...)
	b = append(b, ' ')
	b = append(b, aliasReplace...)
	b = append(b, '\n')
	return b
}

func hash(b []byte, in uint64) uint64 {
	x := in
	for len(b) >= 8 {
		x ^= binary.LittleEndian.Uint64(b)
		x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
		x = (x ^ (x >> 27)) * 0x94d049bb133111eb
		x ^= x >> 31
		b = b[8:]
	}
	if len(b) > 0 {
		var buf [8]byte
		copy(buf[:], b)
		x ^= binary.LittleEndian.Uint64(buf[:])
		x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
		x = (x ^ (x >> 27)) * 0x94d049bb133111eb
		x ^= x >> 31
	}
	return x
}
