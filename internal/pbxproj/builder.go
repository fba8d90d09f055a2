package pbxproj

import (
	"fmt"
	"path"
	"strings"
)

// ProductType is the only product this builder knows how to describe.
const ProductType = "com.apple.product-type.application"

// Params are the domain inputs the graph is assembled from. None of them
// have defaults; all are required.
type Params struct {
	ProductName      string
	BundleID         string
	DeploymentTarget string

	// Capabilities maps an Info.plist usage-description key (for example
	// NSMicrophoneUsageDescription) to its justification text. The text is
	// consumed verbatim into the target build settings.
	Capabilities map[string]string
}

// Validate reports the first input problem, before any identifier is
// minted.
func (p Params) Validate() error {
	if err := requireToken("product name", p.ProductName); err != nil {
		return err
	}
	if err := requireToken("bundle identifier", p.BundleID); err != nil {
		return err
	}
	if err := requireToken("deployment target", p.DeploymentTarget); err != nil {
		return err
	}
	for key, text := range p.Capabilities {
		if err := requireToken("capability key", key); err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("%w: usage description for %s", ErrMissingParam, key)
		}
	}
	return nil
}

// requireToken rejects empty values and values that cannot appear as an
// unquoted token in the descriptor grammar.
func requireToken(what, v string) error {
	if v == "" {
		return fmt.Errorf("%w: %s", ErrMissingParam, what)
	}
	if strings.ContainsAny(v, " \t\n\"") {
		return fmt.Errorf("%w: %s %q must not contain whitespace or quotes", ErrBadInput, what, v)
	}
	return nil
}

// Builder assembles the full descriptor graph from source filenames and
// parameters, minting exactly one identifier per node.
type Builder struct {
	ids *IDGenerator
}

// NewBuilder creates a builder drawing identifiers from ids.
func NewBuilder(ids *IDGenerator) *Builder {
	return &Builder{ids: ids}
}

// Build constructs the graph and returns the root object's identifier with
// the populated model. An empty source list is legal: the Sources phase is
// created with zero associations. Duplicate or malformed filenames fail
// before any identifier is generated.
func (b *Builder) Build(sources []string, p Params) (string, *Graph, error) {
	if err := p.Validate(); err != nil {
		return "", nil, err
	}
	if err := checkSources(sources); err != nil {
		return "", nil, err
	}

	r := &run{ids: b.ids, g: NewGraph()}
	productDir := p.ProductName
	productBundle := p.ProductName + ".app"

	// Product bundle reference first, matching the section order the
	// project editor itself produces.
	appRef := r.add(&FileReference{
		object:     r.next(),
		Path:       productBundle,
		FileType:   "wrapper.application",
		Explicit:   true,
		SourceTree: "BUILT_PRODUCTS_DIR",
	})

	var groupChildren, sourceBuilds []string
	for _, name := range sources {
		ref := r.add(&FileReference{
			object:     r.next(),
			Path:       name,
			FileType:   fileTypeFor(name),
			SourceTree: `"<group>"`,
		})
		groupChildren = append(groupChildren, ref)
		sourceBuilds = append(sourceBuilds, r.add(&BuildFile{
			object:    r.next(),
			FileRef:   ref,
			FileName:  name,
			PhaseName: "Sources",
		}))
	}

	assetsRef := r.add(&FileReference{
		object:     r.next(),
		Path:       "Assets.xcassets",
		FileType:   "folder.assetcatalog",
		SourceTree: `"<group>"`,
	})
	assetsBuild := r.add(&BuildFile{
		object:    r.next(),
		FileRef:   assetsRef,
		FileName:  "Assets.xcassets",
		PhaseName: "Resources",
	})
	plistRef := r.add(&FileReference{
		object:     r.next(),
		Path:       "Info.plist",
		FileType:   "text.plist.xml",
		SourceTree: `"<group>"`,
	})
	groupChildren = append(groupChildren, assetsRef, plistRef)

	// Group identifiers are minted up front: the main group lists its
	// children before they are declared.
	productGroupID := r.next()
	productsGroupID := r.next()
	mainGroup := r.add(&Group{
		object:   r.next(),
		Children: []string{productGroupID.id, productsGroupID.id},
	})
	productsGroup := r.add(&Group{
		object:   productsGroupID,
		Name:     "Products",
		Children: []string{appRef},
	})
	r.add(&Group{
		object:   productGroupID,
		Path:     productDir,
		Children: groupChildren,
	})

	sourcesPhase := r.add(&BuildPhase{
		object: r.next(),
		Phase:  KindSourcesPhase,
		Name:   "Sources",
		Files:  sourceBuilds,
	})
	frameworksPhase := r.add(&BuildPhase{
		object: r.next(),
		Phase:  KindFrameworksPhase,
		Name:   "Frameworks",
	})
	resourcesPhase := r.add(&BuildPhase{
		object: r.next(),
		Phase:  KindResourcesPhase,
		Name:   "Resources",
		Files:  []string{assetsBuild},
	})

	projDebug := r.add(&BuildConfiguration{
		object:   r.next(),
		Name:     "Debug",
		Settings: projectDebugSettings(p),
	})
	projRelease := r.add(&BuildConfiguration{
		object:   r.next(),
		Name:     "Release",
		Settings: projectReleaseSettings(p),
	})
	tgtDebug := r.add(&BuildConfiguration{
		object:   r.next(),
		Name:     "Debug",
		Settings: targetSettings(p),
	})
	tgtRelease := r.add(&BuildConfiguration{
		object:   r.next(),
		Name:     "Release",
		Settings: targetSettings(p),
	})

	projList := r.add(&ConfigurationList{
		object:         r.next(),
		OwnerIsa:       KindProject,
		OwnerName:      p.ProductName,
		Configurations: []string{projDebug, projRelease},
		DefaultName:    "Release",
	})
	tgtList := r.add(&ConfigurationList{
		object:         r.next(),
		OwnerIsa:       KindNativeTarget,
		OwnerName:      p.ProductName,
		Configurations: []string{tgtDebug, tgtRelease},
		DefaultName:    "Release",
	})

	target := r.add(&NativeTarget{
		object:      r.next(),
		Name:        p.ProductName,
		ProductName: p.ProductName,
		ProductType: ProductType,
		ConfigList:  tgtList,
		BuildPhases: []string{sourcesPhase, frameworksPhase, resourcesPhase},
		ProductRef:  appRef,
	})

	root := r.add(&Project{
		object:          r.next(),
		ConfigList:      projList,
		MainGroup:       mainGroup,
		ProductRefGroup: productsGroup,
		Targets:         []string{target},
	})

	if r.err != nil {
		return "", nil, r.err
	}
	return root, r.g, nil
}

// run threads identifier generation and graph insertion through one build,
// latching the first error so the assembly code stays linear.
type run struct {
	ids *IDGenerator
	g   *Graph
	err error
}

func (r *run) next() object {
	if r.err != nil {
		return object{}
	}
	id, err := r.ids.Next()
	if err != nil {
		r.err = err
	}
	return object{id: id}
}

func (r *run) add(n Node) string {
	if r.err != nil {
		return ""
	}
	if err := r.g.Add(n); err != nil {
		r.err = err
		return ""
	}
	return n.ID()
}

func checkSources(sources []string) error {
	seen := make(map[string]struct{}, len(sources))
	for _, name := range sources {
		if name == "" || strings.Contains(name, "/") || strings.ContainsAny(name, " \t\n\"") {
			return fmt.Errorf("%w: %q", ErrBadInput, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSource, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func fileTypeFor(name string) string {
	switch path.Ext(name) {
	case ".swift":
		return "sourcecode.swift"
	case ".xcassets":
		return "folder.assetcatalog"
	case ".plist":
		return "text.plist.xml"
	default:
		return "text"
	}
}

func projectDebugSettings(p Params) map[string]string {
	return map[string]string{
		"ALWAYS_SEARCH_USER_PATHS":   "NO",
		"CLANG_ENABLE_MODULES":       "YES",
		"CLANG_ENABLE_OBJC_ARC":      "YES",
		"DEBUG_INFORMATION_FORMAT":   "dwarf",
		"ENABLE_TESTABILITY":         "YES",
		"GCC_OPTIMIZATION_LEVEL":     "0",
		"IPHONEOS_DEPLOYMENT_TARGET": p.DeploymentTarget,
		"ONLY_ACTIVE_ARCH":           "YES",
		"SDKROOT":                    "iphoneos",
		"SWIFT_OPTIMIZATION_LEVEL":   `"-Onone"`,
	}
}

func projectReleaseSettings(p Params) map[string]string {
	return map[string]string{
		"ALWAYS_SEARCH_USER_PATHS":   "NO",
		"CLANG_ENABLE_MODULES":       "YES",
		"CLANG_ENABLE_OBJC_ARC":      "YES",
		"DEBUG_INFORMATION_FORMAT":   `"dwarf-with-dsym"`,
		"IPHONEOS_DEPLOYMENT_TARGET": p.DeploymentTarget,
		"SDKROOT":                    "iphoneos",
		"SWIFT_COMPILATION_MODE":     "wholemodule",
		"VALIDATE_PRODUCT":           "YES",
	}
}

func targetSettings(p Params) map[string]string {
	s := map[string]string{
		"ASSETCATALOG_COMPILER_APPICON_NAME": "AppIcon",
		"CODE_SIGN_STYLE":                    "Automatic",
		"CURRENT_PROJECT_VERSION":            "1",
		"GENERATE_INFOPLIST_FILE":            "YES",
		"INFOPLIST_FILE":                     p.ProductName + "/Info.plist",
		"LD_RUNPATH_SEARCH_PATHS":            `("$(inherited)", "@executable_path/Frameworks")`,
		"MARKETING_VERSION":                  "1.0",
		"PRODUCT_BUNDLE_IDENTIFIER":          p.BundleID,
		"PRODUCT_NAME":                       `"$(TARGET_NAME)"`,
		"SWIFT_VERSION":                      "5.0",
		"TARGETED_DEVICE_FAMILY":             `"1,2"`,
	}
	for key, text := range p.Capabilities {
		s["INFOPLIST_KEY_"+key] = quoteSetting(text)
	}
	return s
}

func quoteSetting(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
