package quad

// The fragment program carries the whole effect catalog behind one integer uniform. Branch
// numbering follows effects.ID.
const (
	vertexShaderSource = `
	#version 410
	uniform float flipX;
	in vec2 vertPos;
	in vec2 texPos;
	out vec2 fragTexPos;

	void main() {
		fragTexPos = vec2(0.5 + (texPos.x - 0.5) * flipX, texPos.y);
		gl_Position = vec4(vertPos, 0.0, 1.0);
	}`

	fragmentShaderSource = `
	#version 410
	precision highp float;

	uniform sampler2D tex;
	uniform vec2 resolution;
	uniform float time;
	uniform int filterType;
	uniform vec3 colorShift;
	uniform float bassAmp;
	uniform float midAmp;
	uniform float highAmp;

	in vec2 fragTexPos;
	out vec4 frag_color;

	const float PI = 3.14159265;
	const vec3 LUMA = vec3(0.299, 0.587, 0.114);

	// the texture holds premultiplied alpha
	vec4 sampleTex(vec2 uv) {
		vec4 c = texture(tex, uv);
		if (c.a <= 0.0) {
			return vec4(0.0);
		}
		return vec4(c.rgb / c.a, c.a);
	}

	float random(vec2 st) {
		return fract(sin(dot(st, vec2(12.9898, 78.233))) * 43758.5453123);
	}

	float brightness(vec3 c) { return dot(c, LUMA); }
	float average(vec3 c) { return (c.r + c.g + c.b) / 3.0; }

	vec2 texel() {
		return vec2(resolution.x > 0.0 ? 1.0 / resolution.x : 0.0,
		            resolution.y > 0.0 ? 1.0 / resolution.y : 0.0);
	}

	vec3 sepiaTone(vec3 c) {
		return clamp(vec3(
			dot(c, vec3(0.393, 0.769, 0.189)),
			dot(c, vec3(0.349, 0.686, 0.168)),
			dot(c, vec3(0.272, 0.534, 0.131))), 0.0, 1.0);
	}

	vec3 aberration(vec2 uv, float shift) {
		return vec3(
			sampleTex(vec2(uv.x + shift, uv.y)).r,
			sampleTex(uv).g,
			sampleTex(vec2(uv.x - shift, uv.y)).b);
	}

	vec3 grayscale(vec3 c) {
		float l = dot(c, vec3(0.2126, 0.7152, 0.0722));
		return vec3(l);
	}

	vec3 ecoPink(vec3 c) {
		if (average(c) < 0.3137) {
			c = clamp(c + vec3(0.3137, -0.1961, 0.3922), 0.0, 1.0);
		}
		return c;
	}

	vec3 weird(vec3 c) {
		float m = average(c);
		if (m > 0.7058) {
			return c.brg;
		}
		if (m < 0.3921) {
			return c * 0.5;
		}
		return c;
	}

	vec3 modularColorShift(vec3 c) {
		float m = average(c);
		vec3 o;
		if (m > 0.6667) {
			o = mix(c, vec3(0.4706, 0.5882, 1.0), highAmp);
		} else if (m > 0.3922) {
			o = mix(c, vec3(0.3922, 0.7059, 0.7843), midAmp);
		} else {
			o = mix(c, vec3(0.3137, 0.4706, 0.7059), bassAmp);
		}
		return clamp(o, 0.0, 1.0);
	}

	vec3 glowOutline(vec2 uv, vec3 c) {
		vec2 px = texel();
		float j = 0.005;
		float sy = sin(uv.y * 100.0) * j, cy = cos(uv.y * 100.0) * j;
		float sx = sin(uv.x * 100.0) * j, cx = cos(uv.x * 100.0) * j;
		float up = sampleTex(uv + vec2(sy, px.y + cx)).r;
		float down = sampleTex(uv + vec2(cy, -px.y + sx)).r;
		float left = sampleTex(uv + vec2(-px.x + sy, cx)).r;
		float right = sampleTex(uv + vec2(px.x + cy, sx)).r;
		float diff = abs(c.r - up) + abs(c.r - down) + abs(c.r - left) + abs(c.r - right);
		float edge = smoothstep(0.01, 0.1, diff);
		float glow = smoothstep(0.7, 1.0, brightness(c)) * 0.5;
		return clamp(mix(c + vec3(glow), vec3(1.0), edge), 0.0, 1.0);
	}

	vec3 angelicalGlitch(vec2 uv, vec3 c) {
		float b = brightness(c * 1.3);
		float s = sin(time * 0.1), co = cos(time * 0.1);
		vec2 d = vec2(random(uv + vec2(s, co)) - 0.5, random(uv + vec2(co, s)) - 0.5) * 0.1;
		vec3 o = sampleTex(uv + d).rgb;
		if (b > 0.5) {
			vec3 hue = vec3(0.5 + 0.3 * sin(time * 2.0),
			                0.2 + 0.5 * cos(time * 1.5),
			                0.6 + 0.4 * sin(time * 3.0));
			o = mix(o, hue, 0.5);
		}
		return clamp(o, 0.0, 1.0);
	}

	vec2 kaleidoscope(vec2 uv) {
		vec2 c = uv - 0.5;
		float r = length(c);
		float sector = PI / 3.0;
		float a = abs(mod(atan(c.y, c.x), sector) - sector / 2.0);
		return vec2(cos(a), sin(a)) * r + 0.5;
	}

	vec2 mirror(vec2 uv) {
		if (uv.x > 0.5) {
			uv.x = 1.0 - uv.x;
		}
		return uv;
	}

	vec2 fisheye(vec2 uv) {
		float k = 0.8;
		vec2 c = uv * 2.0 - 1.0;
		float r = length(c);
		float theta = atan(c.y, c.x);
		float rd = r / (1.0 - k * r);
		return (vec2(cos(theta), sin(theta)) * rd + 1.0) * 0.5;
	}

	vec3 recuerdo(vec2 uv) {
		float wob = sin(time * 0.8) * 0.01;
		uv.x += sin(uv.y * 20.0 + time * 3.0) * wob;
		uv.y += cos(uv.x * 22.0 + time * 2.5) * wob;

		float grain = random(uv * time) * 0.1;
		vec2 dir = uv - 0.5;
		float focus = smoothstep(0.4, 0.2, length(dir) * 2.5);
		float strength = (1.0 - focus) * 0.015;

		vec4 blurred = vec4(0.0);
		for (int i = 0; i < 8; i++) {
			blurred += sampleTex(uv + dir * (strength * float(i) / 8.0));
		}
		blurred /= 8.0;

		vec3 m = mix(blurred, sampleTex(uv), focus).rgb * vec3(1.1, 1.05, 0.9);
		vec3 toned = mix(m, sepiaTone(m), 0.5);
		return clamp(toned + vec3(grain), 0.0, 1.0);
	}

	vec3 glitch2(vec2 uv) {
		float jt = floor(time * 12.0);
		float jr = random(vec2(jt * 0.017, jt * 0.031));
		float jr2 = random(vec2(jt * 0.053, jt * 0.072));
		float jx = 0.0, jy = 0.0;
		if (jr > 0.75) {
			jx = (jr - 0.75) * 0.18 * sign(jr2 - 0.5);
			jy = (jr2 - 0.5) * 0.06;
		}
		uv = fract(uv + vec2(jx, jy));

		float fz = smoothstep(0.08, 0.14, uv.y) * (1.0 - smoothstep(0.50, 0.56, uv.y));
		float fzx = smoothstep(0.20, 0.30, uv.x) * (1.0 - smoothstep(0.70, 0.80, uv.x));
		float fm = fz * fzx;
		float fby = floor(uv.y * 80.0) / 80.0;
		float fg = random(vec2(fby * 3.1, floor(time * 20.0) * 0.7));
		float fs = (fg > 0.7 && fm > 0.3) ? (fg - 0.7) * 0.35 : 0.0;
		uv.x = fract(uv.x + sin(uv.y * 60.0 + time * 18.0) * 0.025 * fm + fs);
		uv.y = fract(uv.y + cos(uv.x * 45.0 + time * 14.0) * 0.018 * fm);

		float by = floor(uv.y * 40.0) / 40.0;
		float gs = random(vec2(by, floor(time * 12.0)));
		float gs2 = random(vec2(by + 0.3, floor(time * 8.0)));
		if (gs > 0.65) {
			uv.x = fract(uv.x + (gs - 0.65) * 1.2);
		}

		vec3 aber = aberration(uv, 0.018 + gs2 * 0.025 + abs(jx) * 0.3);
		float lum = brightness(aber);
		float wave = sin(uv.y * 18.0 + time * 5.0) * 0.5 + 0.5;
		vec3 pal = mix(vec3(1.0, 0.05, 0.75), vec3(0.0, 1.0, 0.2), wave);
		vec3 col = mix(aber * 0.3, pal, smoothstep(0.2, 0.8, lum));

		float line = mod(floor(uv.y * resolution.y), 3.0);
		float ns = random(vec2(uv.x * 100.0, floor(time * 20.0) + uv.y * 50.0));
		if (line == 0.0 && ns > 0.6) {
			col = mix(col, pal.brg, 0.8);
		}
		float flash = jr > 0.88 ? (jr - 0.88) * 4.0 : 0.0;
		return clamp(mix(col, vec3(1.0), flash * 0.5), 0.0, 1.0);
	}

	vec3 vhs(vec2 uv) {
		vec2 grid = vec2(320.0, 240.0);
		vec2 pix = (floor(uv * grid) + 0.5) / grid;
		float scan = 1.0 - mod(floor(uv.y * resolution.y), 2.0) * 0.18;
		float cs = 2.0 * texel().x;

		vec3 col = aberration(pix, cs);
		float grain = random(uv + vec2(time * 0.017, time * 0.031)) * 0.12;
		col += vec3(grain * smoothstep(0.5, 0.0, brightness(col)));

		float jt = floor(time * 15.0);
		float js = random(vec2(floor(uv.y * resolution.y * 0.25), jt));
		float ja = step(0.92, js);
		float jamt = (random(vec2(js, jt * 0.1)) - 0.5) * 0.03;
		vec2 juv = clamp(vec2(pix.x + jamt * ja, pix.y), 0.0, 1.0);
		vec3 jammed = aberration(juv, cs);
		return clamp(mix(col, jammed, ja) * scan, 0.0, 1.0);
	}

	void main() {
		vec2 uv = fragTexPos;
		vec4 c = sampleTex(uv);
		vec3 o = c.rgb;

		switch (filterType) {
		case 1: o = grayscale(c.rgb); break;
		case 2: o = 1.0 - c.rgb; break;
		case 3: o = sepiaTone(c.rgb); break;
		case 4: o = ecoPink(c.rgb); break;
		case 5: o = weird(c.rgb); break;
		case 6: o = glowOutline(uv, c.rgb); break;
		case 7: o = angelicalGlitch(uv, c.rgb); break;
		case 8: o = mod(c.rgb + colorShift, 1.0); break;
		case 9: o = modularColorShift(c.rgb); break;
		case 10: o = sampleTex(kaleidoscope(uv)).rgb; break;
		case 11: o = sampleTex(mirror(uv)).rgb; break;
		case 12: o = sampleTex(fisheye(uv)).rgb; break;
		case 13: o = recuerdo(uv); break;
		case 14: o = glitch2(uv); break;
		case 15: o = vhs(uv); break;
		}

		frag_color = vec4(o * c.a, c.a);
	}`
)
