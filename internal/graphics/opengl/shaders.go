package opengl

import (
	"fmt"

	"block-breaker-3d/internal/gpu"
)

const skyboxVert = `
#version 410 core
layout(location = 0) in vec3 aPos;

uniform mat4 uMVP;

out vec3 vDir;

void main() {
    vDir = aPos;
    // depth = 1 after the divide
    gl_Position = (uMVP * vec4(aPos, 1.0)).xyww;
}
`

const skyboxFrag = `
#version 410 core
in vec3 vDir;
out vec4 FragColor;

uniform samplerCube uTexture;

void main() {
    FragColor = texture(uTexture, vDir);
}
`

const modelVert = `
#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uMVP;

out vec3 vFragPos;
out vec3 vNormal;
out vec2 vUV;

void main() {
    vFragPos = vec3(uModel * vec4(aPos, 1.0));
    vNormal = mat3(transpose(inverse(uModel))) * aNormal;
    vUV = aUV;
    gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const noPhongFrag = `
#version 410 core
in vec3 vFragPos;
in vec3 vNormal;
in vec2 vUV;
out vec4 FragColor;

uniform sampler2D uTexture;

void main() {
    FragColor = texture(uTexture, vUV);
}
`

// phongFrag sums ambient, diffuse and specular terms over every light, with
// distance attenuation.
var phongFrag = fmt.Sprintf(`
#version 410 core
#define MAX_LIGHTS %d
in vec3 vFragPos;
in vec3 vNormal;
in vec2 vUV;
out vec4 FragColor;

uniform sampler2D uTexture;
uniform vec3 uObjectColor;
uniform vec3 uLightColor;
uniform vec3 uViewPos;
uniform int uLightCount;
uniform vec3 uLightPos[MAX_LIGHTS];

void main() {
    vec3 base = texture(uTexture, vUV).rgb * uObjectColor;
    vec3 norm = normalize(vNormal);
    vec3 viewDir = normalize(uViewPos - vFragPos);

    vec3 result = 0.15 * uLightColor;
    for (int i = 0; i < uLightCount && i < MAX_LIGHTS; i++) {
        vec3 toLight = uLightPos[i] - vFragPos;
        float dist = length(toLight);
        vec3 lightDir = toLight / max(dist, 0.0001);
        float atten = 1.0 / (1.0 + 0.09 * dist + 0.032 * dist * dist);

        float diff = max(dot(norm, lightDir), 0.0);
        vec3 reflectDir = reflect(-lightDir, norm);
        float spec = pow(max(dot(viewDir, reflectDir), 0.0), 32.0);

        result += atten * (diff + 0.5 * spec) * uLightColor;
    }
    FragColor = vec4(result * base, 1.0);
}
`, gpu.MaxLights)

const uiVert = `
#version 410 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec4 aColor;

uniform mat4 uMVP;

out vec2 vUV;
out vec4 vColor;

void main() {
    vUV = aUV;
    vColor = aColor;
    gl_Position = uMVP * vec4(aPos, 0.0, 1.0);
}
`

// The font atlas is a single-channel texture; coverage lives in red.
const uiFrag = `
#version 410 core
in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;

uniform sampler2D uTexture;

void main() {
    FragColor = vec4(vColor.rgb, vColor.a * texture(uTexture, vUV).r);
}
`

type shaderSource struct {
	vert, frag string
}

var pipelineSources = [gpu.PipelineCount]shaderSource{
	gpu.PipelineSkybox:  {skyboxVert, skyboxFrag},
	gpu.PipelineNoPhong: {modelVert, noPhongFrag},
	gpu.PipelinePhong:   {modelVert, phongFrag},
	gpu.PipelineUI:      {uiVert, uiFrag},
}
