package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"winter-scene/internal/scenegraph"
)

// Lit shader: one spot light, an ambient term and linear fog. texture0 is raylib's albedo
// slot, so untextured meshes sample the default white texture.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
uniform vec2 texRepeat;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord * texRepeat;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 spotPos;
uniform vec3 spotDir;
uniform vec3 spotColor;
uniform float spotIntensity;
uniform float spotDistance;
uniform float spotDecay;
uniform float spotCosOuter;
uniform float spotCosInner;
uniform vec3 ambient;
uniform vec3 fogColor;
uniform float fogNear;
uniform float fogFar;
uniform float alphaCutoff;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  if (tint.a < alphaCutoff) discard;
  vec3 N = normalize(fragNormal);
  if (!gl_FrontFacing) N = -N;
  vec3 toLight = spotPos - fragPosition;
  float dist = length(toLight);
  vec3 L = toLight / max(dist, 0.0001);
  float cone = smoothstep(spotCosOuter, spotCosInner, dot(-L, spotDir));
  float falloff = 1.0;
  if (spotDistance > 0.0) falloff = pow(clamp(1.0 - dist / spotDistance, 0.0, 1.0), spotDecay);
  float NdotL = max(dot(N, L), 0.0);
  vec3 lit = tint.rgb * (ambient + spotColor * spotIntensity * NdotL * cone * falloff);
  float fog = 0.0;
  if (fogFar > fogNear) fog = clamp((length(viewPos - fragPosition) - fogNear) / (fogFar - fogNear), 0.0, 1.0);
  finalColor = vec4(mix(lit, fogColor, fog), tint.a);
}
`
)

// litShader wraps the lit shader and its uniform locations.
type litShader struct {
	shader rl.Shader
	locs   map[string]int32
}

var litUniforms = []string{
	"texRepeat", "viewPos", "spotPos", "spotDir", "spotColor", "spotIntensity", "spotDistance",
	"spotDecay", "spotCosOuter", "spotCosInner", "ambient", "fogColor", "fogNear", "fogFar", "alphaCutoff",
}

// loadLitShader compiles the shader. Must run after the window/OpenGL context exists.
func loadLitShader() *litShader {
	s := &litShader{shader: rl.LoadShaderFromMemory(litVS, litFS), locs: make(map[string]int32)}
	if !rl.IsShaderValid(s.shader) {
		return s
	}
	s.shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocation(s.shader, "matModel"))
	s.shader.UpdateLocation(rl.ShaderLocMatrixNormal, rl.GetShaderLocation(s.shader, "matNormal"))
	for _, name := range litUniforms {
		s.locs[name] = rl.GetShaderLocation(s.shader, name)
	}
	return s
}

func (s *litShader) valid() bool { return rl.IsShaderValid(s.shader) }

func (s *litShader) setFloat(name string, v float32) {
	if loc, ok := s.locs[name]; ok && loc >= 0 {
		rl.SetShaderValue(s.shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (s *litShader) setVec2(name string, v [2]float32) {
	if loc, ok := s.locs[name]; ok && loc >= 0 {
		rl.SetShaderValueV(s.shader, loc, v[:], rl.ShaderUniformVec2, 1)
	}
}

func (s *litShader) setVec3(name string, v [3]float32) {
	if loc, ok := s.locs[name]; ok && loc >= 0 {
		rl.SetShaderValueV(s.shader, loc, v[:], rl.ShaderUniformVec3, 1)
	}
}

// setLights uploads the per-frame uniforms: viewer, spot, ambient and fog.
// A nil spot or fog switches that term off.
func (s *litShader) setLights(view mgl32.Vec3, spot, ambient *scenegraph.Light, fog *scenegraph.Fog) {
	s.setVec3("viewPos", view)

	if spot != nil && spot.Visible {
		pos := spot.WorldPosition()
		dir := spot.Target.Sub(pos)
		if dir.Len() > 0 {
			dir = dir.Normalize()
		}
		s.setVec3("spotPos", pos)
		s.setVec3("spotDir", dir)
		s.setVec3("spotColor", spot.Color)
		s.setFloat("spotIntensity", spot.Intensity)
		s.setFloat("spotDistance", spot.Distance)
		s.setFloat("spotDecay", spot.Decay)
		s.setFloat("spotCosOuter", math32.Cos(spot.Angle))
		s.setFloat("spotCosInner", math32.Cos(spot.Angle*(1-spot.Penumbra)))
	} else {
		s.setFloat("spotIntensity", 0)
	}

	var amb [3]float32
	if ambient != nil && ambient.Visible {
		for i := range amb {
			amb[i] = ambient.Color[i] * ambient.Intensity
		}
	}
	s.setVec3("ambient", amb)

	if fog != nil {
		s.setVec3("fogColor", fog.Color)
		s.setFloat("fogNear", fog.Near)
		s.setFloat("fogFar", fog.Far)
	} else {
		s.setFloat("fogNear", 0)
		s.setFloat("fogFar", 0)
	}
}

// setMaterial uploads the per-mesh uniforms.
func (s *litShader) setMaterial(m scenegraph.Material) {
	repeat := m.Repeat
	if repeat == [2]float32{} {
		repeat = [2]float32{1, 1}
	}
	s.setVec2("texRepeat", repeat)
	cutoff := float32(0)
	if m.Transparent {
		cutoff = 0.1
	}
	s.setFloat("alphaCutoff", cutoff)
}
