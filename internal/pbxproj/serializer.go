package pbxproj

import (
	"fmt"
	"sort"
	"strings"
)

// sectionOrder is the fixed order the consuming tool's parser expects, not
// a preference of this package.
var sectionOrder = []Kind{
	KindBuildFile,
	KindFileReference,
	KindFrameworksPhase,
	KindGroup,
	KindNativeTarget,
	KindProject,
	KindResourcesPhase,
	KindSourcesPhase,
	KindBuildConfiguration,
	KindConfigurationList,
}

// Serialize renders the graph into the project-descriptor grammar. Every
// cross-reference is validated against the declarations before a single
// byte is emitted; a dangling reference never reaches the output. The
// function is pure: serializing the same graph twice yields byte-identical
// text.
func Serialize(rootID string, g *Graph) ([]byte, error) {
	if err := validate(rootID, g); err != nil {
		return nil, err
	}

	s := serializer{g: g}
	var b strings.Builder
	b.WriteString("// !$*UTF8*$!\n{\n")
	b.WriteString("\tarchiveVersion = 1;\n")
	b.WriteString("\tclasses = {};\n")
	b.WriteString("\tobjectVersion = 56;\n")
	b.WriteString("\tobjects = {\n")
	for _, kind := range sectionOrder {
		nodes := g.Of(kind)
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n/* Begin %s section */\n", kind)
		for _, n := range nodes {
			s.writeNode(&b, n)
		}
		fmt.Fprintf(&b, "/* End %s section */\n", kind)
	}
	b.WriteString("\t};\n")
	fmt.Fprintf(&b, "\trootObject = %s;\n}\n", s.ref(rootID))
	return []byte(b.String()), nil
}

// validate checks referential integrity and the configuration-list default
// invariant for the whole graph.
func validate(rootID string, g *Graph) error {
	if _, err := g.Resolve(rootID); err != nil {
		return fmt.Errorf("%w: root object %s", ErrDanglingReference, rootID)
	}
	for _, kind := range g.Kinds() {
		for _, n := range g.Of(kind) {
			for _, ref := range n.Refs() {
				if _, err := g.Resolve(ref); err != nil {
					return fmt.Errorf("%w: %s referenced by %s", ErrDanglingReference, ref, n.ID())
				}
			}
			if l, ok := n.(*ConfigurationList); ok {
				if err := checkDefault(g, l); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkDefault(g *Graph, l *ConfigurationList) error {
	for _, id := range l.Configurations {
		n, err := g.Resolve(id)
		if err != nil {
			return fmt.Errorf("%w: %s referenced by %s", ErrDanglingReference, id, l.ID())
		}
		if c, ok := n.(*BuildConfiguration); ok && c.Name == l.DefaultName {
			return nil
		}
	}
	return fmt.Errorf("%w: %q in list %s", ErrDefaultConfiguration, l.DefaultName, l.ID())
}

type serializer struct {
	g *Graph
}

// ref formats an identifier with its decorative comment. Validation has
// already guaranteed the identifier resolves.
func (s serializer) ref(id string) string {
	n, err := s.g.Resolve(id)
	if err != nil {
		return id
	}
	return s.decl(n)
}

func (s serializer) decl(n Node) string {
	comment := sanitizeComment(n.Comment())
	if comment == "" {
		return n.ID()
	}
	return n.ID() + " /* " + comment + " */"
}

func (s serializer) writeNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *BuildFile:
		fmt.Fprintf(b, "\t\t%s = {isa = PBXBuildFile; fileRef = %s; };\n",
			s.decl(v), s.ref(v.FileRef))
	case *FileReference:
		s.writeFileReference(b, v)
	case *Group:
		s.writeGroup(b, v)
	case *BuildPhase:
		s.writeBuildPhase(b, v)
	case *NativeTarget:
		s.writeNativeTarget(b, v)
	case *Project:
		s.writeProject(b, v)
	case *BuildConfiguration:
		s.writeBuildConfiguration(b, v)
	case *ConfigurationList:
		s.writeConfigurationList(b, v)
	}
}

func (s serializer) writeFileReference(b *strings.Builder, f *FileReference) {
	if f.Explicit {
		fmt.Fprintf(b, "\t\t%s = {isa = PBXFileReference; explicitFileType = %s; includeInIndex = 0; path = %s; sourceTree = %s; };\n",
			s.decl(f), f.FileType, f.Path, f.SourceTree)
		return
	}
	fmt.Fprintf(b, "\t\t%s = {isa = PBXFileReference; lastKnownFileType = %s; path = %s; sourceTree = %s; };\n",
		s.decl(f), f.FileType, f.Path, f.SourceTree)
}

func (s serializer) writeGroup(b *strings.Builder, g *Group) {
	fmt.Fprintf(b, "\t\t%s = {\n", s.decl(g))
	b.WriteString("\t\t\tisa = PBXGroup;\n")
	b.WriteString("\t\t\tchildren = (\n")
	for _, child := range g.Children {
		fmt.Fprintf(b, "\t\t\t\t%s,\n", s.ref(child))
	}
	b.WriteString("\t\t\t);\n")
	if g.Name != "" {
		fmt.Fprintf(b, "\t\t\tname = %s;\n", g.Name)
	}
	if g.Path != "" {
		fmt.Fprintf(b, "\t\t\tpath = %s;\n", g.Path)
	}
	b.WriteString("\t\t\tsourceTree = \"<group>\";\n")
	b.WriteString("\t\t};\n")
}

func (s serializer) writeBuildPhase(b *strings.Builder, p *BuildPhase) {
	fmt.Fprintf(b, "\t\t%s = {\n", s.decl(p))
	fmt.Fprintf(b, "\t\t\tisa = %s;\n", p.Phase)
	b.WriteString("\t\t\tbuildActionMask = 2147483647;\n")
	if p.Phase == KindFrameworksPhase {
		b.WriteString("\t\t\tfiles = ();\n")
	} else {
		b.WriteString("\t\t\tfiles = (\n")
		for _, f := range p.Files {
			fmt.Fprintf(b, "\t\t\t\t%s,\n", s.ref(f))
		}
		b.WriteString("\t\t\t);\n")
	}
	b.WriteString("\t\t\trunOnlyForDeploymentPostprocessing = 0;\n")
	b.WriteString("\t\t};\n")
}

func (s serializer) writeNativeTarget(b *strings.Builder, t *NativeTarget) {
	fmt.Fprintf(b, "\t\t%s = {\n", s.decl(t))
	b.WriteString("\t\t\tisa = PBXNativeTarget;\n")
	fmt.Fprintf(b, "\t\t\tbuildConfigurationList = %s;\n", s.ref(t.ConfigList))
	b.WriteString("\t\t\tbuildPhases = (\n")
	for _, phase := range t.BuildPhases {
		fmt.Fprintf(b, "\t\t\t\t%s,\n", s.ref(phase))
	}
	b.WriteString("\t\t\t);\n")
	b.WriteString("\t\t\tbuildRules = ();\n")
	b.WriteString("\t\t\tdependencies = ();\n")
	fmt.Fprintf(b, "\t\t\tname = %s;\n", t.Name)
	fmt.Fprintf(b, "\t\t\tproductName = %s;\n", t.ProductName)
	fmt.Fprintf(b, "\t\t\tproductReference = %s;\n", s.ref(t.ProductRef))
	fmt.Fprintf(b, "\t\t\tproductType = %q;\n", t.ProductType)
	b.WriteString("\t\t};\n")
}

func (s serializer) writeProject(b *strings.Builder, p *Project) {
	fmt.Fprintf(b, "\t\t%s = {\n", s.decl(p))
	b.WriteString("\t\t\tisa = PBXProject;\n")
	fmt.Fprintf(b, "\t\t\tbuildConfigurationList = %s;\n", s.ref(p.ConfigList))
	b.WriteString("\t\t\tcompatibilityVersion = \"Xcode 14.0\";\n")
	b.WriteString("\t\t\tdevelopmentRegion = en;\n")
	b.WriteString("\t\t\thasScannedForEncodings = 0;\n")
	b.WriteString("\t\t\tknownRegions = (en, Base);\n")
	fmt.Fprintf(b, "\t\t\tmainGroup = %s;\n", s.ref(p.MainGroup))
	fmt.Fprintf(b, "\t\t\tproductRefGroup = %s;\n", s.ref(p.ProductRefGroup))
	b.WriteString("\t\t\tprojectDirPath = \"\";\n")
	b.WriteString("\t\t\tprojectRoot = \"\";\n")
	fmt.Fprintf(b, "\t\t\ttargets = (%s);\n", s.refList(p.Targets))
	b.WriteString("\t\t};\n")
}

func (s serializer) writeBuildConfiguration(b *strings.Builder, c *BuildConfiguration) {
	fmt.Fprintf(b, "\t\t%s = {\n", s.decl(c))
	b.WriteString("\t\t\tisa = XCBuildConfiguration;\n")
	b.WriteString("\t\t\tbuildSettings = {\n")
	keys := make([]string, 0, len(c.Settings))
	for k := range c.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "\t\t\t\t%s = %s;\n", k, c.Settings[k])
	}
	b.WriteString("\t\t\t};\n")
	fmt.Fprintf(b, "\t\t\tname = %s;\n", c.Name)
	b.WriteString("\t\t};\n")
}

func (s serializer) writeConfigurationList(b *strings.Builder, l *ConfigurationList) {
	fmt.Fprintf(b, "\t\t%s = {\n", s.decl(l))
	b.WriteString("\t\t\tisa = XCConfigurationList;\n")
	fmt.Fprintf(b, "\t\t\tbuildConfigurations = (%s);\n", s.refList(l.Configurations))
	b.WriteString("\t\t\tdefaultConfigurationIsVisible = 0;\n")
	fmt.Fprintf(b, "\t\t\tdefaultConfigurationName = %s;\n", l.DefaultName)
	b.WriteString("\t\t};\n")
}

func (s serializer) refList(ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = s.ref(id)
	}
	return strings.Join(parts, ", ")
}
