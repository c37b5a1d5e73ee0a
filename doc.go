/*
Package remat translates Poser material shader trees into Lux material
records.

A host material is a graph of nodes. The converter walks the inputs of the
root node, translates the subgraph attached to each channel into renderer
textures and folds everything into a Material. Translated nodes are cached
per material, so a node shared by several channels is translated once.
Unsupported nodes are passed through to the first translatable node among
their inputs; failures stay local to the node or channel and are logged.

Any host can feed the converter by implementing Node, Input and
SourceMaterial. ShaderTree implements them for shader trees read from
Poser files or built in code.

Reader example:

	trees, err := remat.DecodeFile("figure.mt5", nil)
	if err != nil {
		// handle error
	}

Converter example:

	conv := remat.NewConverter(&remat.ConvertOptions{Logger: logger})
	for _, tree := range trees {
		m, err := conv.Convert(tree)
		if err != nil {
			// material has no root node, m holds defaults
		}
		_ = m
	}

Builder example:

	tree := remat.NewShaderTree("Skin")
	root := tree.AddNode(remat.NodeTypeSurface, "PoserSurface")
	img := tree.AddNode(remat.NodeTypeImageMap, "Image_Map")
	img.SetString("Image_Source", ":Runtime:textures:skin.jpg")
	root.SetColor("Diffuse_Color", remat.White)
	root.Connect("Diffuse_Color", img)

Writer example:

	out, err := remat.Format(m, &remat.FormatOptions{Format: remat.FormatJSON})
	if err != nil {
		// handle error
	}

Validator example:

	issues := remat.Validate(m, &remat.ValidateOptions{TextureRoot: "/opt/poser"})
	if len(issues) != 0 {
		// handle validation issues
	}
*/
package remat
