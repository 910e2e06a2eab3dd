package compute

import "vox-ca/internal/core"

// The grid lives in a flat u32 storage buffer in canonical z-major order.
// The params block carries the dimensions and, for birth/survival rules, two
// 8-slot presence arrays indexed by neighborCount-3 covering counts 3..10;
// counts outside that range never trigger birth or survival for the rules in
// the catalog. Work-items outside the grid (the dispatch is tiled in 4x4x4
// workgroups) must return without writing.
//
// The three rule shapes are separate entry points; the pipeline for the
// configured shape is selected at configure time.
const stepShaderWGSL = `
struct Params {
    sx: u32,
    sy: u32,
    sz: u32,
    pad: u32,
    birth: array<u32, 8>,
    survival: array<u32, 8>,
}

@group(0) @binding(0) var<storage, read> src: array<u32>;
@group(0) @binding(1) var<storage, read_write> dst: array<u32>;
@group(0) @binding(2) var<storage, read> params: Params;

fn wrap(v: i32, n: u32) -> u32 {
    let m = i32(n);
    return u32(((v % m) + m) % m);
}

fn cell_index(x: u32, y: u32, z: u32) -> u32 {
    return (z * params.sy + y) * params.sx + x;
}

fn live_neighbors(x: u32, y: u32, z: u32) -> u32 {
    var count: u32 = 0u;
    for (var dz: i32 = -1; dz <= 1; dz++) {
        for (var dy: i32 = -1; dy <= 1; dy++) {
            for (var dx: i32 = -1; dx <= 1; dx++) {
                if (dx == 0 && dy == 0 && dz == 0) {
                    continue;
                }
                let nx = wrap(i32(x) + dx, params.sx);
                let ny = wrap(i32(y) + dy, params.sy);
                let nz = wrap(i32(z) + dz, params.sz);
                if (src[cell_index(nx, ny, nz)] == 1u) {
                    count++;
                }
            }
        }
    }
    return count;
}

@compute @workgroup_size(4, 4, 4)
fn step_birth_survival(@builtin(global_invocation_id) gid: vec3<u32>) {
    if (gid.x >= params.sx || gid.y >= params.sy || gid.z >= params.sz) {
        return;
    }
    let idx = cell_index(gid.x, gid.y, gid.z);
    let count = live_neighbors(gid.x, gid.y, gid.z);
    var next: u32 = 0u;
    if (count >= 3u && count <= 10u) {
        let slot = count - 3u;
        if (src[idx] == 1u) {
            next = params.survival[slot];
        } else {
            next = params.birth[slot];
        }
    }
    dst[idx] = next;
}

@compute @workgroup_size(4, 4, 4)
fn step_special(@builtin(global_invocation_id) gid: vec3<u32>) {
    if (gid.x >= params.sx || gid.y >= params.sy || gid.z >= params.sz) {
        return;
    }
    let idx = cell_index(gid.x, gid.y, gid.z);
    let state = src[idx];
    if (state == 1u) {
        dst[idx] = 2u;
    } else if (state == 2u) {
        dst[idx] = 0u;
    } else if (live_neighbors(gid.x, gid.y, gid.z) == 2u) {
        dst[idx] = 1u;
    } else {
        dst[idx] = 0u;
    }
}

@compute @workgroup_size(4, 4, 4)
fn step_static(@builtin(global_invocation_id) gid: vec3<u32>) {
    if (gid.x >= params.sx || gid.y >= params.sy || gid.z >= params.sz) {
        return;
    }
    let idx = cell_index(gid.x, gid.y, gid.z);
    dst[idx] = src[idx];
}
`

// entryPoint returns the shader entry for a rule shape. Keep in sync with the
// WGSL above.
func entryPoint(kind core.RuleKind) string {
	switch kind {
	case core.KindSpecial:
		return "step_special"
	case core.KindStatic:
		return "step_static"
	default:
		return "step_birth_survival"
	}
}
