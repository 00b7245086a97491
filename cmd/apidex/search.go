package main

import (
	"fmt"

	"github.com/apidex/apidex"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	res, err := deps.Search.SearchByContent(deps.Ctx, c.Query, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}

	if err := printResult(deps, res); err != nil {
		return err
	}
	if len(res.Members) == 0 && !deps.JSON {
		suggestAlternatives(deps, c.Query)
	}
	return nil
}

// Run executes the name command.
func (c *NameCmd) Run(deps *Dependencies) error {
	var res *apidex.QueryResult
	var err error

	if c.Type != "" || c.Namespace != "" || c.Assembly != "" {
		res, err = deps.Search.SearchWithFilters(deps.Ctx, apidex.SearchFilter{
			NamePattern:      c.Pattern,
			MemberType:       apidex.MemberType(c.Type),
			NamespacePattern: c.Namespace,
			AssemblyPattern:  c.Assembly,
			Max:              c.Max,
		})
	} else {
		res, err = deps.Search.SearchByName(deps.Ctx, c.Pattern, c.Max)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}

	if err := printResult(deps, res); err != nil {
		return err
	}
	if len(res.Members) == 0 && !deps.JSON {
		suggestAlternatives(deps, c.Pattern)
	}
	return nil
}

// Run executes the namespace command.
func (c *NamespaceCmd) Run(deps *Dependencies) error {
	res, err := deps.Search.SearchByNamespacePattern(deps.Ctx, c.Pattern, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}
	return printResult(deps, res)
}

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	m, err := deps.Search.GetByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}
	return printMember(deps, m)
}
