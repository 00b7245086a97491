package main

import (
	"fmt"

	"github.com/apidex/apidex"
)

// Run executes the exceptions command.
func (c *ExceptionsCmd) Run(deps *Dependencies) error {
	res, err := deps.Search.GetByExceptionType(deps.Ctx, c.Pattern, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}
	return printResult(deps, res)
}

// Run executes the examples command.
func (c *ExamplesCmd) Run(deps *Dependencies) error {
	var res *apidex.QueryResult
	var err error

	if c.Pattern == "" {
		res, err = deps.Search.GetMethodsWithExamples(deps.Ctx, c.Max)
	} else {
		res, err = deps.Search.SearchByCodeExample(deps.Ctx, c.Pattern, c.Max)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}
	return printResult(deps, res)
}

// Run executes the complexity command.
func (c *ComplexityCmd) Run(deps *Dependencies) error {
	res, err := deps.Search.GetComplexMethods(deps.Ctx, c.Min, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}
	return printResult(deps, res)
}

// Run executes the params command.
func (c *ParamsCmd) Run(deps *Dependencies) error {
	max := c.Max
	if max < 0 {
		max = c.Min
	}
	res, err := deps.Search.GetByParameterCount(deps.Ctx, c.Min, max, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}
	return printResult(deps, res)
}

// Run executes the members command. When the declaringType field yields no
// hits the lookup falls back to fullName prefix matching, which covers
// documents indexed before that field existed.
func (c *MembersCmd) Run(deps *Dependencies) error {
	res, err := deps.Search.SearchByDeclaringType(deps.Ctx, c.Type, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}

	if len(res.Members) == 0 {
		res, err = deps.Search.GetTypeMembers(deps.Ctx, c.Type, c.Max)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
			return err
		}
	}
	return printResult(deps, res)
}

// Run executes the types command.
func (c *TypesCmd) Run(deps *Dependencies) error {
	var res *apidex.QueryResult
	var err error

	if c.Assembly {
		res, err = deps.Search.ListTypesFromAssembly(deps.Ctx, c.Pattern, c.Max)
	} else {
		res, err = deps.Search.ListTypesFromPackage(deps.Ctx, c.Pattern, c.Max)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}
	return printResult(deps, res)
}
