package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// The vertex stage pulls vertex records straight out of a shader storage
// buffer indexed by gl_VertexID instead of using fixed-function attribute
// binding; the element buffer alone decides which records are read.
const vertexShaderSource = `#version 460 core

layout(binding = 1) uniform UniformBufferObject {
    mat4 MVP;
} ubo;

struct Vertex
{
    vec4 position;
    vec4 color;
    vec2 texcoord;
};

layout(std430, binding = 0) buffer Mesh
{
    Vertex vertex[];
} mesh;

out gl_PerVertex
{
    vec4 gl_Position;
};

out block
{
    vec4 Color;
    vec2 Texcoord;
} Out;

void main()
{
    gl_Position = ubo.MVP * mesh.vertex[gl_VertexID].position;
    Out.Color = mesh.vertex[gl_VertexID].color;
    Out.Texcoord = mesh.vertex[gl_VertexID].texcoord;
}
`

const fragmentShaderSource = `#version 460 core

layout(binding = 1) uniform sampler2D tex;

in block
{
    vec4 Color;
    vec2 Texcoord;
} In;

layout(location = 0) out vec4 color;

void main()
{
    color = texture(tex, In.Texcoord);
}
`

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader compile failed: %s", infoLog)
	}
	return shader, nil
}

// buildPipeline compiles both stages into a single separable program and
// binds its vertex and fragment bits to a new program pipeline. The stage
// shader objects are detached and deleted after the link; their compiled
// code lives on in the program.
func buildPipeline(vsSource, fsSource string) (program, pipeline uint32, err error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vsSource)
	if err != nil {
		return 0, 0, fmt.Errorf("vertex stage: %w", err)
	}
	fs, err := compileShader(gl.FRAGMENT_SHADER, fsSource)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, 0, fmt.Errorf("fragment stage: %w", err)
	}
	shaders := [2]uint32{vs, fs}

	program = gl.CreateProgram()
	gl.ProgramParameteri(program, gl.PROGRAM_SEPARABLE, gl.TRUE)

	for _, shader := range shaders {
		gl.AttachShader(program, shader)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		for _, shader := range shaders {
			gl.DeleteShader(shader)
		}
		return 0, 0, fmt.Errorf("program link failed: %s", infoLog)
	}

	for _, shader := range shaders {
		gl.DetachShader(program, shader)
		gl.DeleteShader(shader)
	}

	gl.CreateProgramPipelines(1, &pipeline)
	gl.UseProgramStages(pipeline, gl.VERTEX_SHADER_BIT|gl.FRAGMENT_SHADER_BIT, program)

	return program, pipeline, nil
}
