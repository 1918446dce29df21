package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption configures a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithGroup sets the bind group index the provider is bound at during draw calls.
//
// Parameters:
//   - group: the @group index declared in WGSL
//
// Returns:
//   - BindGroupProviderOption: a function that sets the group index
func WithGroup(group int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.group = group
	}
}

// WithBindGroupLayout reuses an existing layout instead of letting InitBindGroup create one.
// The per-entry providers of the scene share one layout this way.
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
	}
}
