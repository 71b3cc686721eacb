package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steezy2401/smartexp/internal/common"
	"github.com/steezy2401/smartexp/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesRemoveCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's categories",
		RunE:  runCategoriesList,
	}

	cmd.Flags().Int64("user-id", 1, "User identifier")
	cmd.Flags().String("type", "EXPENSE", "Category type (EXPENSE or INCOME)")

	return cmd
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetInt64("user-id")
	typeName, _ := cmd.Flags().GetString("type")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	categories, err := store.GetCategoriesForUser(ctx, userID, model.CategoryType(typeName))
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}
	for _, cat := range categories {
		fmt.Printf("%s\t%s\tcreated %s\n", cat.Symbol, cat.Type, cat.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategoriesAdd,
	}

	cmd.Flags().Int64("user-id", 1, "User identifier")
	cmd.Flags().String("type", "EXPENSE", "Category type (EXPENSE or INCOME)")

	return cmd
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetInt64("user-id")
	typeName, _ := cmd.Flags().GetString("type")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	cat, err := store.CreateCategory(ctx, args[0], model.CategoryType(typeName), userID)
	if errors.Is(err, common.ErrDuplicateEntry) {
		return common.NewUserError(fmt.Sprintf("category %s already exists", args[0]), err)
	}
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}

	fmt.Printf("Added category %s (%s)\n", cat.Symbol, cat.Type)
	return nil
}

func categoriesRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <symbol>",
		Short: "Remove a category",
		Long:  "Removes a category from keyboards and listings. Records already tagged with it are kept.",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategoriesRemove,
	}

	cmd.Flags().Int64("user-id", 1, "User identifier")
	cmd.Flags().String("type", "EXPENSE", "Category type (EXPENSE or INCOME)")

	return cmd
}

func runCategoriesRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetInt64("user-id")
	typeName, _ := cmd.Flags().GetString("type")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	err = store.DeactivateCategory(ctx, userID, args[0], model.CategoryType(typeName))
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("no category %s to remove", args[0]), err)
	}
	if err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}

	fmt.Printf("Removed category %s\n", args[0])
	return nil
}
