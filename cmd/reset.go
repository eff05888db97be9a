package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eryajf/servicebot/internal/database"
)

var resetConfirmed bool

// resetCmd 清空知识库
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "清空知识库",
	Long:  `删除知识库中的所有问答记录(包括 Redis 缓存)，并重建 question 列上的普通索引。问答日志保留。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirmed {
			return errors.New("refusing to clear the knowledge store without --yes")
		}

		app, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		n, err := app.store.Reset(cmd.Context())
		if err != nil {
			return err
		}
		if err := database.EnsureQuestionIndex(app.db); err != nil {
			return err
		}

		fmt.Printf("Knowledge store cleared, %d records removed\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVarP(&resetConfirmed, "yes", "y", false, "确认清空")
}
