// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	BootstrapFailedId Id = iota + 1
	ProjectNotFoundId
	NoSourcesId
	UnknownExtensionId
	CompileFailedId
	PackagingFailedId
	NoEntryPointId
	EntryPointFailedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guide with glamour. stylePath accepts glamour's
// standard style names ("auto", "dark", "light", "notty") or a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
		for _, link := range i.extLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	bootstrapFailedIssue = &Issue{
		id: BootstrapFailedId,
		mdMsg: `
# Failed to generate the JVM runtimes!

myjvm unpacks a bundle with a JVM and the Java, Kotlin and Scala compilers
into a runtime directory (` + "`.languages`" + ` by default) the first time it runs.

## Things you can try:
- Reinstall the runtime from scratch:
~~~
$ myjvm runtime install --force
~~~

- Point myjvm at an external bundle when the binary was built without one:
~~~
$ MYJVM_RUNTIME_BUNDLE_PATH=/path/to/.languages.tar.zst myjvm ./project
~~~

- Check that the current directory is writable`,
		extLinks: []HttpLink{"https://github.com/facebook/zstd"},
	}

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# Project directory not found!

The project path must be an existing directory containing your sources.

## Things you can try:
- Check the path for typos
- Pass the directory, not a single source file:
~~~
$ myjvm ./my-project
~~~`,
	}

	noSourcesIssue = &Issue{
		id: NoSourcesId,
		mdMsg: `
# No source files found!

myjvm looks for files ending in ` + "`.java`" + `, ` + "`.kt`" + ` or ` + "`.sc`" + ` anywhere
under the project directory.

## Things you can try:
- Make sure the project contains at least one supported source file
- Rename Scala sources to use the ` + "`.sc`" + ` extension`,
	}

	unknownExtensionIssue = &Issue{
		id: UnknownExtensionId,
		mdMsg: `
# Unknown extension!

No files were compiled because the project language could not be determined.

## Things you can try:
- Check that your sources use one of the supported extensions:
  ` + "`.java`" + `, ` + "`.kt`" + `, ` + "`.sc`",
	}

	compileFailedIssue = &Issue{
		id: CompileFailedId,
		mdMsg: `
# Compilation failed!

The compiler reported errors. Its output is shown above.

## Things you can try:
- Fix the reported errors and run myjvm again
- Force a clean rebuild if the previous build is stale:
~~~
$ myjvm --force ./project
~~~`,
	}

	packagingFailedIssue = &Issue{
		id: PackagingFailedId,
		mdMsg: `
# Failed to package the compiled classes!

The classes were compiled but could not be collected into the project archive.

## Things you can try:
- Check free disk space and permissions of the output directory
- Remove the output directory and build again:
~~~
$ myjvm clean ./project
$ myjvm ./project
~~~`,
	}

	noEntryPointIssue = &Issue{
		id: NoEntryPointId,
		mdMsg: `
# No valid entrypoints detected!

myjvm tried every class in the archive and none of them ran successfully.

## Things you can try:
- List the classes that were considered:
~~~
$ myjvm classes ./project
~~~

- Name the class to run explicitly:
~~~
$ myjvm ./project com.example.Main
~~~`,
	}

	entryPointFailedIssue = &Issue{
		id: EntryPointFailedId,
		mdMsg: `
# Unable to run provided entrypoint!

The class you named exited with an error or could not be started.

## Things you can try:
- Check the class name, including its package
- Rebuild the project in case the archive is out of date:
~~~
$ myjvm --force ./project com.example.Main
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be parsed or did not match the schema.

## Things you can try:
- Show the effective configuration:
~~~
$ myjvm config show
~~~

- Write a fresh default configuration:
~~~
$ myjvm config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

myjvm could not read or write one of the files it needs.

## Things you can try:
- Check the permissions of the project and runtime directories
- Reinstall the runtime if the launchers lost their executable bit:
~~~
$ myjvm runtime install --force
~~~`,
	}

	issues = map[Id]*Issue{
		bootstrapFailedIssue.Id():  bootstrapFailedIssue,
		projectNotFoundIssue.Id():  projectNotFoundIssue,
		noSourcesIssue.Id():        noSourcesIssue,
		unknownExtensionIssue.Id(): unknownExtensionIssue,
		compileFailedIssue.Id():    compileFailedIssue,
		packagingFailedIssue.Id():  packagingFailedIssue,
		noEntryPointIssue.Id():     noEntryPointIssue,
		entryPointFailedIssue.Id(): entryPointFailedIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
