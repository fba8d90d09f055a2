package pbxproj

import "strings"

// Kind is the `isa` class of a node and doubles as its section name in the
// serialized descriptor.
type Kind string

const (
	KindBuildFile          Kind = "PBXBuildFile"
	KindFileReference      Kind = "PBXFileReference"
	KindFrameworksPhase    Kind = "PBXFrameworksBuildPhase"
	KindGroup              Kind = "PBXGroup"
	KindNativeTarget       Kind = "PBXNativeTarget"
	KindProject            Kind = "PBXProject"
	KindResourcesPhase     Kind = "PBXResourcesBuildPhase"
	KindSourcesPhase       Kind = "PBXSourcesBuildPhase"
	KindBuildConfiguration Kind = "XCBuildConfiguration"
	KindConfigurationList  Kind = "XCConfigurationList"
)

// Node is one object in the descriptor graph. Comment is the decorative
// annotation emitted next to the identifier (empty for the main group);
// Refs lists every identifier the node points at, in declaration order,
// for referential-integrity checking.
type Node interface {
	ID() string
	Isa() Kind
	Comment() string
	Refs() []string
}

type object struct {
	id string
}

func (o object) ID() string { return o.id }

// FileReference declares a file the project knows about. Product bundles
// carry an explicit file type and are excluded from indexing; everything
// else carries a last-known file type.
type FileReference struct {
	object
	Path       string
	FileType   string
	Explicit   bool
	SourceTree string
}

func (f *FileReference) Isa() Kind       { return KindFileReference }
func (f *FileReference) Comment() string { return f.Path }
func (f *FileReference) Refs() []string  { return nil }

// BuildFile associates a FileReference with a build phase. FileName and
// PhaseName only feed the decorative comment.
type BuildFile struct {
	object
	FileRef   string
	FileName  string
	PhaseName string
}

func (b *BuildFile) Isa() Kind       { return KindBuildFile }
func (b *BuildFile) Comment() string { return b.FileName + " in " + b.PhaseName }
func (b *BuildFile) Refs() []string  { return []string{b.FileRef} }

// Group is a navigator folder. The main group has neither name nor path and
// renders without a comment.
type Group struct {
	object
	Name     string
	Path     string
	Children []string
}

func (g *Group) Isa() Kind { return KindGroup }

func (g *Group) Comment() string {
	if g.Name != "" {
		return g.Name
	}
	return g.Path
}

func (g *Group) Refs() []string { return g.Children }

// BuildPhase is one ordered build step. Phase selects the concrete isa
// (sources, frameworks or resources); Files order is significant and
// preserved verbatim.
type BuildPhase struct {
	object
	Phase Kind
	Name  string
	Files []string
}

func (p *BuildPhase) Isa() Kind       { return p.Phase }
func (p *BuildPhase) Comment() string { return p.Name }
func (p *BuildPhase) Refs() []string  { return p.Files }

// BuildConfiguration is one named set of build settings. Values are stored
// exactly as they must appear in the descriptor, quoting included.
type BuildConfiguration struct {
	object
	Name     string
	Settings map[string]string
}

func (c *BuildConfiguration) Isa() Kind       { return KindBuildConfiguration }
func (c *BuildConfiguration) Comment() string { return c.Name }
func (c *BuildConfiguration) Refs() []string  { return nil }

// ConfigurationList is an ordered set of configurations with a named
// default. OwnerIsa and OwnerName only feed the decorative comment.
type ConfigurationList struct {
	object
	OwnerIsa       Kind
	OwnerName      string
	Configurations []string
	DefaultName    string
}

func (l *ConfigurationList) Isa() Kind { return KindConfigurationList }

func (l *ConfigurationList) Comment() string {
	return `Build configuration list for ` + string(l.OwnerIsa) + ` "` + l.OwnerName + `"`
}

func (l *ConfigurationList) Refs() []string { return l.Configurations }

// NativeTarget is the buildable product.
type NativeTarget struct {
	object
	Name        string
	ProductName string
	ProductType string
	ConfigList  string
	BuildPhases []string
	ProductRef  string
}

func (t *NativeTarget) Isa() Kind       { return KindNativeTarget }
func (t *NativeTarget) Comment() string { return t.Name }

func (t *NativeTarget) Refs() []string {
	refs := []string{t.ConfigList}
	refs = append(refs, t.BuildPhases...)
	return append(refs, t.ProductRef)
}

// Project is the root object anchoring the graph.
type Project struct {
	object
	ConfigList      string
	MainGroup       string
	ProductRefGroup string
	Targets         []string
}

func (p *Project) Isa() Kind       { return KindProject }
func (p *Project) Comment() string { return "Project object" }

func (p *Project) Refs() []string {
	refs := []string{p.ConfigList, p.MainGroup, p.ProductRefGroup}
	return append(refs, p.Targets...)
}

// sanitizeComment strips the comment delimiters so a display name can never
// terminate the annotation it is embedded in.
func sanitizeComment(s string) string {
	return strings.NewReplacer("/*", "", "*/", "").Replace(s)
}
