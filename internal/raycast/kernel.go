package raycast

import "fmt"

// rayKernelSource is the OpenCL ray kernel. Its view_input and ray_result
// structs mirror ViewInput and RayResult field for field, and the program
// refuses to build unless the host passes a matching LAYOUT_VERSION.
const rayKernelSource = `#define KERNEL_LAYOUT_VERSION 1
#if LAYOUT_VERSION != KERNEL_LAYOUT_VERSION
#error "host record layout does not match view_input/ray_result"
#endif

typedef struct {
    float pos_x;
    float pos_y;
    float angle;
    float fov;
    float ray_count;
    float angle_step;
    int viewport_width;
    int viewport_height;
} view_input;

typedef struct {
    float height;
    float shade;
} ray_result;

__kernel void cast_rays(
    __global const view_input* view,
    __global const float* walls,
    const int wall_count,
    const float max_distance,
    const float wall_height,
    const float fog_distance,
    const float epsilon,
    __global ray_result* out)
{
    int i = get_global_id(0);
    int count = (int)view->ray_count;
    if (i >= count) {
        return;
    }
    float offset = -0.5f * view->fov + ((float)i + 0.5f) * view->angle_step;
    float ray_angle = view->angle + offset;
    float dx = cos(-ray_angle);
    float dy = -sin(-ray_angle);
    float best = max_distance;
    for (int w = 0; w < wall_count; w++) {
        float ax = walls[w * 4 + 0];
        float ay = walls[w * 4 + 1];
        float ex = walls[w * 4 + 2] - ax;
        float ey = walls[w * 4 + 3] - ay;
        float den = dx * ey - dy * ex;
        if (den == 0.0f) {
            continue;
        }
        float rx = ax - view->pos_x;
        float ry = ay - view->pos_y;
        float t = (rx * ey - ry * ex) / den;
        float u = (rx * dy - ry * dx) / den;
        if (t > 0.0f && u >= 0.0f && u <= 1.0f && t < best) {
            best = t;
        }
    }
    float corrected = best * cos(offset);
    float plane = (float)view->viewport_width * 0.5f / tan(view->fov * 0.5f);
    float d = corrected < epsilon ? epsilon : corrected;
    float f = corrected / fog_distance;
    float shade = corrected <= 0.0f ? 1.0f : 1.0f - f * f;
    out[i].height = wall_height * plane / d;
    out[i].shade = shade < 0.0f ? 0.0f : shade;
}`

// kernelBuildOptions passes the host record layout version to the kernel
// compiler.
func kernelBuildOptions() string {
	return fmt.Sprintf("-DLAYOUT_VERSION=%d", LayoutVersion)
}
