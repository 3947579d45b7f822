package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/catalog"
	"github.com/ravendevteam/toolbox/internal/config"
)

// completePackageNames lists catalog package names.
// It reads the cached catalog only; completion never touches the network.
func completePackageNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	paths, err := config.ResolvePaths()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	store := catalog.NewStore(paths.CatalogPath(), paths.LastUpdatePath(), nil)
	cat, err := store.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return packageNames(cat, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func packageNames(cat *catalog.Catalog, prefix string) []string {
	prefix = strings.ToLower(prefix)
	var names []string
	for _, pkg := range cat.Packages {
		if strings.HasPrefix(strings.ToLower(pkg.Name), prefix) {
			names = append(names, pkg.Name)
		}
	}
	return names
}
