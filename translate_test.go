package remat

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// diffuseTree returns a tree whose diffuse channel is driven by the node built by fn.
func diffuseTree(fn func(tree *ShaderTree) *TreeNode) *ShaderTree {
	tree := NewShaderTree("Test")
	root := tree.AddNode(NodeTypeSurface, "PoserSurface").SetColor("Diffuse_Color", White)
	root.Connect("Diffuse_Color", fn(tree))
	return tree
}

func TestTranslateStopNodes(t *testing.T) {
	for _, typ := range []NodeType{NodeTypeScatter, NodeTypeDiffuse} {
		t.Run(typ.String(), func(t *testing.T) {
			tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
				return tree.AddNode(typ, "Stop").Connect("Color", addImage(tree, "Image_Map", "skin.jpg"))
			})

			m := mustConvert(t, tree, quietOptions())
			if m.Diffuse.HasMap() || len(m.Nodes) != 0 {
				t.Fatalf("stop node should discard its upstream: %q, %d nodes", m.Diffuse.Map, len(m.Nodes))
			}
		})
	}
}

func TestTranslateEdgeBlendSkipsAttenuation(t *testing.T) {
	tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
		return tree.AddNode(NodeTypeEdgeBlend, "Edge").
			Connect("Attenuation", addImage(tree, "Falloff", "falloff.jpg")).
			Connect("Inner_Color", addImage(tree, "Inner", "inner.jpg"))
	})

	m := mustConvert(t, tree, quietOptions())
	if m.Diffuse.Map != "Inner" {
		t.Fatalf("diffuse map = %q, want Inner", m.Diffuse.Map)
	}
	if _, ok := m.Nodes["Falloff"]; ok {
		t.Fatal("attenuation subgraph should not be translated")
	}
}

func TestTranslateUnknownNodeFallsThrough(t *testing.T) {
	tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
		empty := tree.AddNode(NodeTypeImageMap, "Empty").SetFloat("U_Scale", 1)
		return tree.addNode(NodeTypeUnknown, "fresnel", "Fresnel").
			SetFloat("Index", 1.33).
			Connect("Reflection", empty).
			Connect("Refraction", addImage(tree, "Image_Map", "skin.jpg"))
	})

	m := mustConvert(t, tree, quietOptions())
	if m.Diffuse.Map != "Image_Map" {
		t.Fatalf("diffuse map = %q, want Image_Map", m.Diffuse.Map)
	}
	if _, ok := m.Nodes["Fresnel"]; ok {
		t.Fatal("pass-through node must not be cached")
	}
}

func TestTranslateImageMap(t *testing.T) {
	tests := []struct {
		name   string
		uScale float64
		vScale float64
		want   ImageMap
	}{
		{name: "scaled", uScale: 0.25, vScale: 2, want: ImageMap{FileName: "skin.jpg", UTile: 4, VTile: 0.5, UOffset: 0.1, VOffset: 0.2, Gain: 1}},
		{name: "zero scale", uScale: 0, vScale: 0, want: ImageMap{FileName: "skin.jpg", UTile: 1, VTile: 1, UOffset: 0.1, VOffset: 0.2, Gain: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
				return addImage(tree, "Image_Map", "skin.jpg").
					SetFloat("U_Scale", tt.uScale).
					SetFloat("V_Scale", tt.vScale).
					SetFloat("U_Offset", 0.1).
					SetFloat("V_Offset", 0.2)
			})

			m := mustConvert(t, tree, quietOptions())
			tex, ok := m.Texture(m.Diffuse.Map)
			if !ok {
				t.Fatal("image map not cached")
			}
			if tex.Kind != TextureKindImageMap || tex.Code != 170 {
				t.Fatalf("unexpected kind %q code %d", tex.Kind, tex.Code)
			}
			if diff := cmp.Diff(&tt.want, tex.ImageMap); diff != "" {
				t.Fatalf("image map mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranslateImageMapWithoutFile(t *testing.T) {
	tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
		return addImage(tree, "Image_Map", "")
	})

	m := mustConvert(t, tree, quietOptions())
	if m.Diffuse.HasMap() || len(m.Nodes) != 0 {
		t.Fatalf("empty image map should produce nothing: %q", m.Diffuse.Map)
	}
}

func TestTranslateBlender(t *testing.T) {
	t.Run("flat colors", func(t *testing.T) {
		tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
			return tree.AddNode(NodeTypeBlender, "Blender").
				SetColor("Input_1", White).
				SetColor("Input_2", Black).
				SetFloat("Blending", 0.5)
		})

		m := mustConvert(t, tree, quietOptions())
		if m.Diffuse.HasMap() {
			t.Fatalf("blending flat colors should produce nothing: %q", m.Diffuse.Map)
		}
	})

	t.Run("one texture", func(t *testing.T) {
		tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
			return tree.AddNode(NodeTypeBlender, "Blender").
				SetColor("Input_1", White).
				SetColor("Input_2", Gray(0.5)).
				SetFloat("Blending", 0.25).
				Connect("Input_2", addImage(tree, "Dirt", "dirt.jpg"))
		})

		m := mustConvert(t, tree, quietOptions())
		tex, ok := m.Texture(m.Diffuse.Map)
		if !ok {
			t.Fatal("blender not cached")
		}
		want := &Mix{Tex1Color: White, Tex2Color: Gray(0.5), Tex2Map: "Dirt", Amount: 0.25}
		if diff := cmp.Diff(want, tex.Mix); diff != "" {
			t.Fatalf("mix mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestTranslateMathFunctions(t *testing.T) {
	tests := []struct {
		code float64
		want MathFunction
		ok   bool
	}{
		{code: 1, want: MathAdd, ok: true},
		{code: 2, want: MathSubtract, ok: true},
		{code: 3, want: MathMultiply, ok: true},
		{code: 2.5, want: MathMultiply, ok: true},
		{code: 0, ok: false},
		{code: 4, ok: false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
				return tree.AddNode(NodeTypeMath, "Math").
					SetFloat("Math_Argument", tt.code).
					SetFloat("Value_1", 2).
					SetFloat("Value_2", 3).
					Connect("Value_1", addImage(tree, "Image_Map", "skin.jpg"))
			})

			m := mustConvert(t, tree, quietOptions())
			tex, ok := m.Texture(m.Diffuse.Map)
			if ok != tt.ok {
				t.Fatalf("translated = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			want := &Math{
				Value1:   ScalarOperand{Value: 2, Map: "Image_Map"},
				Value2:   ScalarOperand{Value: 3},
				Function: tt.want,
			}
			if diff := cmp.Diff(want, tex.Math); diff != "" {
				t.Fatalf("math mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranslateColorMathOperands(t *testing.T) {
	// An image map without a file is connected but never translates.
	build := func(fail1, fail2 bool) *ShaderTree {
		return diffuseTree(func(tree *ShaderTree) *TreeNode {
			n := tree.AddNode(NodeTypeColorMath, "ColorMath").
				SetFloat("Math_Argument", 1).
				SetColor("Value_1", Gray(0.2)).
				SetColor("Value_2", Gray(0.4))
			if fail1 {
				n.Connect("Value_1", addImage(tree, "Broken1", ""))
			}
			if fail2 {
				n.Connect("Value_2", addImage(tree, "Broken2", ""))
			} else {
				n.Connect("Value_2", addImage(tree, "Good", "good.jpg"))
			}
			return n
		})
	}

	t.Run("both translate", func(t *testing.T) {
		m := mustConvert(t, build(false, false), quietOptions())
		tex, ok := m.Texture(m.Diffuse.Map)
		if !ok {
			t.Fatal("color math not cached")
		}
		want := &ColorMath{
			Value1:   &ColorOperand{Color: Gray(0.2)},
			Value2:   &ColorOperand{Color: Gray(0.4), Map: "Good"},
			Function: MathAdd,
		}
		if diff := cmp.Diff(want, tex.ColorMath); diff != "" {
			t.Fatalf("color math mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("one side failed", func(t *testing.T) {
		m := mustConvert(t, build(true, false), quietOptions())
		tex, ok := m.Texture(m.Diffuse.Map)
		if !ok {
			t.Fatal("color math not cached")
		}
		want := &ColorMath{
			Value2:   &ColorOperand{Color: Gray(0.4), Map: "Good"},
			Function: MathMultiply,
		}
		if diff := cmp.Diff(want, tex.ColorMath); diff != "" {
			t.Fatalf("color math mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("both failed", func(t *testing.T) {
		m := mustConvert(t, build(true, true), quietOptions())
		if m.Diffuse.HasMap() {
			t.Fatalf("expected no output, got %q", m.Diffuse.Map)
		}
	})
}

func TestTranslateColorRampAndComponent(t *testing.T) {
	tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
		ramp := tree.AddNode(NodeTypeColorRamp, "Ramp").
			SetColor("Color1", Black).
			SetColor("Color2", Gray(0.33)).
			SetColor("Color3", Gray(0.66)).
			SetColor("Color4", White).
			SetFloat("Input", 0.5).
			Connect("Input", addImage(tree, "Mask", "mask.jpg"))
		return tree.AddNode(NodeTypeComponent, "Comp").
			SetFloat("Component", 2).
			SetColor("Color", White).
			Connect("Color", ramp)
	})

	m := mustConvert(t, tree, quietOptions())
	comp, ok := m.Texture(m.Diffuse.Map)
	if !ok || comp.Component == nil {
		t.Fatal("component not cached")
	}
	if diff := cmp.Diff(&Component{Map: "Ramp", Color: White, Channel: 2}, comp.Component); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}

	ramp := m.Nodes["Ramp"]
	want := &Band{
		AmountMap: "Mask",
		Offsets:   BandOffsets,
		Colors:    [4]Color{Black, Gray(0.33), Gray(0.66), White},
		Amount:    0.5,
	}
	if diff := cmp.Diff(want, ramp.Band); diff != "" {
		t.Fatalf("band mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateHairOwnsSpecular(t *testing.T) {
	tree := NewShaderTree("Hair")
	root := tree.AddNode(NodeTypeSurface, "PoserSurface").
		SetColor("AlternateSpecular", White).
		SetColor("Diffuse_Color", White)
	root.Connect("AlternateSpecular", addImage(tree, "Shine", "shine.jpg"))
	hair := tree.AddNode(NodeTypeHair, "Hair").
		SetColor("Root_Color", SetColorRGB(0.3, 0.2, 0.1)).
		SetColor("Tip_Color", SetColorRGB(0.6, 0.5, 0.4)).
		SetColor("Specular_Color", Gray(0.5)).
		Connect("Specular_Color", addImage(tree, "Spec", "spec.jpg"))
	root.Connect("Diffuse_Color", hair)

	m := mustConvert(t, tree, quietOptions())
	if diff := cmp.Diff(Channel{}, m.Specular2); diff != "" {
		t.Fatalf("alternate specular should be cleared (-want +got):\n%s", diff)
	}
	if m.Specular.Map != "Spec" || m.Specular.Color != Gray(0.5) {
		t.Fatalf("unexpected specular %+v", m.Specular)
	}

	tex, ok := m.Texture(m.Diffuse.Map)
	if !ok || tex.Band == nil {
		t.Fatal("hair band not cached")
	}
	tip := SetColorRGB(0.6, 0.5, 0.4)
	if tex.Band.Colors != [4]Color{SetColorRGB(0.3, 0.2, 0.1), tip, tip, tip} || tex.Band.Amount != 1 {
		t.Fatalf("unexpected band %+v", tex.Band)
	}
}

func TestTranslateHairKeepsSpecularInHostOrder(t *testing.T) {
	tree := NewShaderTree("Hair")
	root := tree.AddNode(NodeTypeSurface, "PoserSurface").
		SetColor("Diffuse_Color", White).
		SetColor("Highlight_Color", White).
		SetFloat("Highlight_Value", 0).
		SetColor("AlternateSpecular", White)
	hair := tree.AddNode(NodeTypeHair, "Hair").
		SetColor("Root_Color", Black).
		SetColor("Tip_Color", White).
		SetColor("Specular_Color", SetColorRGB(1, 0, 0))
	root.Connect("Diffuse_Color", hair)

	m := mustConvert(t, tree, quietOptions())
	if m.Specular.Color != SetColorRGB(1, 0, 0) {
		t.Fatalf("hair specular color replaced: %v", m.Specular.Color)
	}
	if diff := cmp.Diff(Channel{}, m.Specular2); diff != "" {
		t.Fatalf("alternate specular refilled (-want +got):\n%s", diff)
	}
}

func TestTranslateSinkNodes(t *testing.T) {
	altSpec := func(fn func(tree *ShaderTree) *TreeNode) *ShaderTree {
		tree := NewShaderTree("Test")
		root := tree.AddNode(NodeTypeSurface, "PoserSurface").SetColor("AlternateSpecular", White)
		root.Connect("AlternateSpecular", fn(tree))
		return tree
	}

	t.Run("glossy", func(t *testing.T) {
		m := mustConvert(t, altSpec(func(tree *ShaderTree) *TreeNode {
			return tree.AddNode(NodeTypeGlossy, "Glossy").
				SetFloat("Ks", 0.5).
				SetFloat("Roughness", 0.2).
				SetColor("Specular_Color", White).
				Connect("Specular_Color", addImage(tree, "Spec", "spec.jpg"))
		}), quietOptions())
		if m.URoughness != 0.2 || m.VRoughness != 0.2 {
			t.Fatalf("roughness = %v/%v", m.URoughness, m.VRoughness)
		}
		if m.Specular.Color != Gray(0.5) || m.Specular2.Map != "Spec" {
			t.Fatalf("unexpected specular %+v / %+v", m.Specular, m.Specular2)
		}
	})

	t.Run("specular", func(t *testing.T) {
		m := mustConvert(t, altSpec(func(tree *ShaderTree) *TreeNode {
			return tree.AddNode(NodeTypeSpecular, "Specular").
				SetFloat("Specular_Value", 0.25).
				SetColor("Specular_Color", White)
		}), quietOptions())
		if m.Specular.Color != Gray(0.25) || m.URoughness != 1 {
			t.Fatalf("unexpected specular %+v roughness %v", m.Specular, m.URoughness)
		}
	})

	t.Run("phong", func(t *testing.T) {
		m := mustConvert(t, altSpec(func(tree *ShaderTree) *TreeNode {
			return tree.AddNode(NodeTypePhong, "Phong").
				SetFloat("Specular_Value", 0.3).
				SetColor("Specular_Color", Gray(0.9))
		}), quietOptions())
		if !approx(m.URoughness, 0.7) || !approx(m.VRoughness, 0.7) || m.Specular.Color != Gray(0.9) {
			t.Fatalf("unexpected phong result %+v %v/%v", m.Specular, m.URoughness, m.VRoughness)
		}
	})

	t.Run("anisotropic", func(t *testing.T) {
		m := mustConvert(t, altSpec(func(tree *ShaderTree) *TreeNode {
			return tree.AddNode(NodeTypeAnisotropic, "Aniso").
				SetFloat("u_Roughness", 0.1).
				SetFloat("v_Roughness", 0.4).
				SetFloat("Specular_Value", 1).
				Connect("Specular_Value", addImage(tree, "Brush", "brush.jpg"))
		}), quietOptions())
		if m.URoughness != 0.1 || m.VRoughness != 0.4 || m.Specular2.Map != "Brush" {
			t.Fatalf("unexpected anisotropic result %v/%v %q", m.URoughness, m.VRoughness, m.Specular2.Map)
		}
	})

	t.Run("blinn", func(t *testing.T) {
		m := mustConvert(t, altSpec(func(tree *ShaderTree) *TreeNode {
			return tree.AddNode(NodeTypeBlinn, "Blinn").
				SetColor("Specular_Color", White).
				Connect("Specular_Color", addImage(tree, "Spec", "spec.jpg")).
				SetFloat("Reflectivity", 2.5).
				Connect("Reflectivity", addImage(tree, "Rough", "rough.jpg"))
		}), quietOptions())
		if m.URoughness != 0.5 || m.VRoughness != 0.5 || m.RoughnessMap != "Rough" {
			t.Fatalf("unexpected roughness %v/%v %q", m.URoughness, m.VRoughness, m.RoughnessMap)
		}
		if m.Specular.Map != "Spec" || m.Specular2.HasMap() {
			t.Fatalf("unexpected specular maps %q / %q", m.Specular.Map, m.Specular2.Map)
		}
	})

	t.Run("skin", func(t *testing.T) {
		m := mustConvert(t, altSpec(func(tree *ShaderTree) *TreeNode {
			return tree.AddNode(NodeTypeSkin, "Skin").
				Connect("Skin_Color", addImage(tree, "SSS", "sss.jpg"))
		}), quietOptions())
		if !m.IsSkin || m.Specular2.Map != "SSS" {
			t.Fatalf("unexpected skin result %v %q", m.IsSkin, m.Specular2.Map)
		}
	})
}

func TestTranslateProcedurals(t *testing.T) {
	tests := []struct {
		name  string
		build func(tree *ShaderTree) *TreeNode
		check func(t *testing.T, tex *Texture)
	}{
		{
			name: "spots",
			build: func(tree *ShaderTree) *TreeNode {
				return tree.AddNode(NodeTypeSpots, "Spots").
					SetFloat("Noise_Type", 1).
					SetFloat("Spot_Size", 0.5).
					SetFloat("Softness", 0.1).
					SetFloat("Threshold", 0.2).
					SetColor("Base_Color", Gray(0.3)).
					SetColor("Spot_Color", White)
			},
			check: func(t *testing.T, tex *Texture) {
				want := &DistortedNoise{
					NoiseBasis:      NoiseOriginalPerlin,
					NoiseDistortion: NoiseImprovedPerlin,
					BaseColor:       Gray(0.3),
					Size:            0.05,
					Contrast:        0.1,
					Brightness:      0.2,
					Amount:          spotsAmount,
				}
				if diff := cmp.Diff(want, tex.DistortedNoise); diff != "" {
					t.Fatalf("distorted noise mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "noise",
			build: func(tree *ShaderTree) *TreeNode {
				return tree.AddNode(NodeTypeNoise, "Noise").SetFloat("x_Scale", 4)
			},
			check: func(t *testing.T, tex *Texture) {
				if diff := cmp.Diff(&FBM{Scale: 0.03, Octaves: 4, Roughness: 1.5}, tex.FBM); diff != "" {
					t.Fatalf("fbm mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "clouds",
			build: func(tree *ShaderTree) *TreeNode {
				return tree.AddNode(NodeTypeClouds, "Clouds").
					SetFloat("Noise_Type", 0).
					SetFloat("Scale", 0.5).
					SetFloat("Gain", 1.2).
					SetFloat("Complexity", 4).
					SetFloat("Bias", 0.3).
					SetFloat("Bottom", 0.6).
					SetColor("Sky_Color", Gray(0.1)).
					SetColor("Cloud_Color", White)
			},
			check: func(t *testing.T, tex *Texture) {
				want := &Clouds{NoiseBasis: NoiseImprovedPerlin, Style: CloudsHard, SkyColor: Gray(0.1), Size: 0.5, Contrast: 1.2, Brightness: 0.3, Depth: 3}
				if diff := cmp.Diff(want, tex.Clouds); diff != "" {
					t.Fatalf("clouds mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "turbulence",
			build: func(tree *ShaderTree) *TreeNode {
				return tree.AddNode(NodeTypeTurbulence, "Turb").
					SetFloat("Noise_Type", 1).
					SetFloat("x_Index", 2).
					SetFloat("Gain", 0.5).
					SetFloat("Octaves", 6).
					SetFloat("Bias", 0.1)
			},
			check: func(t *testing.T, tex *Texture) {
				c := tex.Clouds
				if c == nil || c.Style != CloudsHard || !approx(c.Size, 0.6) || c.Contrast != 1 || c.Depth != 2 || !approx(c.Brightness, 0.3) {
					t.Fatalf("unexpected turbulence %+v", c)
				}
			},
		},
		{
			name: "marble",
			build: func(tree *ShaderTree) *TreeNode {
				return tree.AddNode(NodeTypeMarble, "Marble").
					SetFloat("Noise_Type", 1).
					SetFloat("Scale", 2).
					SetFloat("Turbulence", 0.5)
			},
			check: func(t *testing.T, tex *Texture) {
				want := &Wood{NoiseBasis: NoiseOriginalPerlin, Pattern: "BAND_NOISE", VeinWave: "SIN", Size: 0.5, Turbulence: 3, Contrast: 2, Brightness: 1}
				if diff := cmp.Diff(want, tex.Wood); diff != "" {
					t.Fatalf("wood mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "granite",
			build: func(tree *ShaderTree) *TreeNode {
				return tree.AddNode(NodeTypeGranite, "Granite").
					SetFloat("Noise_Type", 0).
					SetFloat("Scale", 500).
					SetFloat("Shades", 3)
			},
			check: func(t *testing.T, tex *Texture) {
				c := tex.Clouds
				if c == nil || c.Style != CloudsSoft || c.Size != 0.5 || c.Depth != 2 || c.Brightness != graniteBrightness {
					t.Fatalf("unexpected granite %+v", c)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustConvert(t, diffuseTree(tt.build), quietOptions())
			tex, ok := m.Texture(m.Diffuse.Map)
			if !ok {
				t.Fatalf("%s not cached", tt.name)
			}
			if tex.Code != tex.Kind.Code() || tex.Code == 0 {
				t.Fatalf("unexpected code %d for %q", tex.Code, tex.Kind)
			}
			tt.check(t, tex)
		})
	}
}

func TestTranslateMissingInputFailsNode(t *testing.T) {
	buf := &logBuffer{}
	tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
		return tree.AddNode(NodeTypeClouds, "Clouds").SetFloat("Noise_Type", 0)
	})

	m := mustConvert(t, tree, capturedOptions(buf))
	if m.Diffuse.HasMap() {
		t.Fatalf("incomplete node should produce nothing: %q", m.Diffuse.Map)
	}
	if buf.count("node translation failed") != 1 {
		t.Fatalf("expected a node failure in log:\n%s", buf.buf.String())
	}
}

func TestTranslateReportsMissingOperandOnce(t *testing.T) {
	buf := &logBuffer{}
	conv := NewConverter(capturedOptions(buf))
	tree := diffuseTree(func(tree *ShaderTree) *TreeNode {
		// No Blending input.
		return tree.AddNode(NodeTypeBlender, "Blender").
			SetColor("Input_1", White).
			SetColor("Input_2", Black).
			Connect("Input_1", addImage(tree, "Image_Map", "skin.jpg"))
	})

	for range 3 {
		m, err := conv.Convert(tree)
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		if m.Diffuse.Map != "Blender" {
			t.Fatalf("blender should still translate: %q", m.Diffuse.Map)
		}
	}
	if n := buf.count("malformed shader tree reference"); n != 1 {
		t.Fatalf("missing input reported %d times, want 1", n)
	}

	other := diffuseTree(func(tree *ShaderTree) *TreeNode {
		return tree.AddNode(NodeTypeBlender, "Blender").
			SetColor("Input_2", Black).
			Connect("Input_1", addImage(tree, "Image_Map", "skin.jpg"))
	})
	other.name = "Other"
	if _, err := conv.Convert(other); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if n := buf.count("malformed shader tree reference"); n != 2 {
		t.Fatalf("missing input in another material reported %d times, want 2", n)
	}
}

func TestTranslateCycle(t *testing.T) {
	tree := NewShaderTree("Loop")
	root := tree.AddNode(NodeTypeSurface, "PoserSurface").SetColor("Diffuse_Color", White)
	a := tree.AddNode(NodeTypeUnknown, "A")
	b := tree.AddNode(NodeTypeUnknown, "B")
	a.Connect("In", b)
	b.Connect("In", a)
	root.Connect("Diffuse_Color", a)
	root.SetFloat("Transparency_Max", 0.25)

	buf := &logBuffer{}
	m := mustConvert(t, tree, capturedOptions(buf))
	if m.Diffuse.HasMap() {
		t.Fatalf("cycle should produce nothing: %q", m.Diffuse.Map)
	}
	if !approx(m.Alpha.Strength, 0.75) {
		t.Fatalf("later channels should still convert: alpha %v", m.Alpha.Strength)
	}
	if buf.count("shader tree cycle") == 0 {
		t.Fatalf("expected a cycle in log:\n%s", buf.buf.String())
	}
}

func TestTranslateDepthLimit(t *testing.T) {
	build := func() *ShaderTree {
		tree := NewShaderTree("Deep")
		root := tree.AddNode(NodeTypeSurface, "PoserSurface").SetColor("Diffuse_Color", White)
		prev := addImage(tree, "Image_Map", "skin.jpg")
		for i := range 10 {
			prev = tree.AddNode(NodeTypeUnknown, fmt.Sprintf("Pass_%d", i)).Connect("In", prev)
		}
		root.Connect("Diffuse_Color", prev)
		return tree
	}

	shallow := quietOptions()
	shallow.MaxDepth = 5
	if m := mustConvert(t, build(), shallow); m.Diffuse.HasMap() {
		t.Fatalf("chain deeper than the limit should produce nothing: %q", m.Diffuse.Map)
	}

	if m := mustConvert(t, build(), quietOptions()); m.Diffuse.Map != "Image_Map" {
		t.Fatalf("chain within the default limit should translate: %q", m.Diffuse.Map)
	}
}
