package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const grassComputeSource = `//@oxy:include grass_globals
//@oxy:include grass_instance

//@oxy:group 0 0 storage_uniform grass_globals grass_globals
//@oxy:group 0 1 storage_read_write blades array<grass_instance>

@compute @workgroup_size(1, 1, 1)
fn init_main(@builtin(global_invocation_id) gid: vec3<u32>) {
    blades[gid.x].scale = 1.0;
}
`

func TestProcessGrassIncludesInjectStructSources(t *testing.T) {
	p := NewPreProcessor()
	out, err := p.Process(grassComputeSource)
	require.NoError(t, err)

	assert.Contains(t, out, "struct GrassGlobals {")
	assert.Contains(t, out, "struct GrassInstance {")
	assert.NotContains(t, out, "@oxy", "annotations must not survive processing")
}

func TestProcessGrassGroupGeneratesDeclarations(t *testing.T) {
	p := NewPreProcessor()
	out, err := p.Process(grassComputeSource)
	require.NoError(t, err)

	assert.Contains(t, out, "@group(0) @binding(0) var<uniform> grass_globals: GrassGlobals;")
	assert.Contains(t, out, "@group(0) @binding(1) var<storage, read_write> blades: array<GrassInstance>;")
}

func TestProcessGrassCollectsDeclarations(t *testing.T) {
	p := NewPreProcessor()
	_, err := p.Process(grassComputeSource)
	require.NoError(t, err)

	decls := p.Declarations()
	require.Len(t, decls, 2)

	uniform := decls[0]
	assert.Equal(t, AnnotationTypeBindingGroup, uniform.Type)
	require.NotNil(t, uniform.Group)
	require.NotNil(t, uniform.Binding)
	assert.Equal(t, 0, *uniform.Group)
	assert.Equal(t, 0, *uniform.Binding)
	assert.Equal(t, AnnotationArgGrassGlobals, uniform.Args[2])

	instances := decls[1]
	assert.Equal(t, 1, *instances.Binding)
	assert.Equal(t, "array<grass_instance>", string(instances.Args[2]))
	assert.Equal(t, "blades", string(instances.Args[1]))
}

func TestGrassInstanceBufferLayouts(t *testing.T) {
	p := NewPreProcessor()
	out, err := p.Process(grassComputeSource)
	require.NoError(t, err)

	layouts, varNames := parseBindGroupLayouts(out, wgpu.ShaderStageCompute)
	desc, ok := layouts[0]
	require.True(t, ok)
	require.Len(t, desc.Entries, 2)

	uniform := desc.Entries[0]
	assert.Equal(t, wgpu.BufferBindingTypeUniform, uniform.Buffer.Type)
	assert.Equal(t, uint64(64), uniform.Buffer.MinBindingSize, "GrassGlobals is a 64-byte uniform")

	blades := desc.Entries[1]
	assert.Equal(t, wgpu.BufferBindingTypeStorage, blades.Buffer.Type)
	assert.Equal(t, uint64(16), blades.Buffer.MinBindingSize, "runtime arrays report the element stride")

	assert.Equal(t, "grass_globals", varNames[0][0])
	assert.Equal(t, "blades", varNames[0][1])
}

func TestGrassVertexSharesInstanceLayout(t *testing.T) {
	source := strings.Join([]string{
		"//@oxy:include camera",
		"//@oxy:include vertex",
		"//@oxy:include grass_instance",
		"//@oxy:include grass_globals",
		"//@oxy:group 0 0 storage_uniform camera camera",
		"//@oxy:group 1 0 storage_read blades array<grass_instance>",
		"//@oxy:group 1 1 storage_uniform grass_globals grass_globals",
	}, "\n")

	p := NewPreProcessor()
	out, err := p.Process(source)
	require.NoError(t, err)

	layouts, _ := parseBindGroupLayouts(out, wgpu.ShaderStageVertex)
	require.Contains(t, layouts, 0)
	require.Contains(t, layouts, 1)

	assert.Equal(t, uint64(80), layouts[0].Entries[0].Buffer.MinBindingSize, "camera uniform is 80 bytes")
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, layouts[1].Entries[0].Buffer.Type)
	assert.Equal(t, uint64(16), layouts[1].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(64), layouts[1].Entries[1].Buffer.MinBindingSize)
}

func TestProviderAnnotationEmitsNoWGSL(t *testing.T) {
	source := strings.Join([]string{
		"//@oxy:provider 2 0 material diffuse_texture",
		"@group(2) @binding(0) var diffuse_texture: texture_2d<f32>;",
	}, "\n")

	p := NewPreProcessor()
	out, err := p.Process(source)
	require.NoError(t, err)
	assert.NotContains(t, out, "@oxy")

	decls := p.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, AnnotationTypeProvider, decls[0].Type)
	assert.Equal(t, AnnotationArgMaterial, decls[0].Args[0])
	assert.Equal(t, AnnotationArgDiffuseTexture, decls[0].Args[1])
}

func TestProcessRejectsUnknownGrassKey(t *testing.T) {
	p := NewPreProcessor()
	_, err := p.Process("//@oxy:include grass_blades")
	assert.Error(t, err)
}
