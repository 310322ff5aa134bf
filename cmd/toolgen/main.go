// Command toolgen 根据 tools.yml 生成 MCP 工具名称常量。
package main

import (
	"fmt"
	"os"

	"github.com/dave/jennifer/jen"
	"github.com/iancoleman/strcase"
	flags "github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type (
	ToolDescription struct {
		Name          string `yaml:"name"`
		CamelCaseName string `yaml:"camel_case_name,omitempty"`
		Documentation string `yaml:"doc,omitempty"`
	}

	GroupDescription struct {
		Name          string            `yaml:"name"`
		Documentation string            `yaml:"doc,omitempty"`
		Tools         []ToolDescription `yaml:"tools"`
	}

	ToolsDescription struct {
		Groups []GroupDescription `yaml:"groups"`
	}
)

var opts struct {
	Input   string `short:"i" long:"input" description:"tools.yml path" required:"true"`
	Output  string `short:"o" long:"output" description:"generated go file path" required:"true"`
	Package string `short:"p" long:"package" description:"package name" default:"mcptools"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	description, err := loadDescription(opts.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	file, err := generate(opts.Package, description)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err = file.Save(opts.Output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadDescription(path string) (*ToolsDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var description ToolsDescription
	if err = yaml.Unmarshal(data, &description); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &description, nil
}

func (tool *ToolDescription) camelCaseName() string {
	if tool.CamelCaseName != "" {
		return tool.CamelCaseName
	}
	return strcase.ToCamel(tool.Name)
}

func generate(packageName string, description *ToolsDescription) (*jen.File, error) {
	file := jen.NewFile(packageName)
	file.HeaderComment("Code generated by toolgen. DO NOT EDIT.")

	seen := make(map[string]string)
	groups := jen.Dict{}
	for _, group := range description.Groups {
		if group.Name == "" {
			return nil, fmt.Errorf("group name is required")
		}
		names := make([]jen.Code, 0, len(group.Tools))
		if group.Documentation != "" {
			file.Comment(group.Documentation)
		}
		var err error
		file.Const().DefsFunc(func(g *jen.Group) {
			for _, tool := range group.Tools {
				id := tool.camelCaseName()
				if previous, ok := seen[id]; ok {
					err = fmt.Errorf("duplicate tool %s in group %s, already defined in %s", tool.Name, group.Name, previous)
					return
				}
				seen[id] = group.Name
				if tool.Documentation != "" {
					g.Comment(id + " " + tool.Documentation)
				}
				g.Id(id).Op("=").Lit(tool.Name)
				names = append(names, jen.Id(id))
			}
		})
		if err != nil {
			return nil, err
		}
		groups[jen.Lit(group.Name)] = jen.Values(names...)
	}

	file.Comment("Groups 按分组列出全部工具名称。")
	file.Var().Id("Groups").Op("=").Map(jen.String()).Index().String().Values(groups)
	return file, nil
}
