package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/eryajf/servicebot/internal/database"
	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/service"
)

var (
	historyLimit      int
	historySource     string
	historyOutputType string
)

// historyCmd 查看问答日志
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看最近的问答记录",
	Long:  `按时间倒序列出问答日志，可按来源(memory 或 online+generated)过滤。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		logs, total, err := service.NewChatLogService(db).
			ListChatLogs(cmd.Context(), historySource, historyLimit, 0)
		if err != nil {
			return fmt.Errorf("failed to list chat logs: %w", err)
		}

		// 输出结果
		if historyOutputType == "json" {
			data, _ := json.MarshalIndent(logs, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		rows := make([][]string, 0, len(logs))
		for _, l := range logs {
			rows = append(rows, []string{
				fmt.Sprintf("%d", l.ID),
				l.Timestamp.Local().Format(time.DateTime),
				l.Source,
				l.Question,
			})
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
			Headers("ID", "Time", "Source", "Question").
			Rows(rows...)

		fmt.Println(t)
		fmt.Println()
		logx.Info("Query completed, count %d, total %d", len(logs), total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "显示条数")
	historyCmd.Flags().StringVar(&historySource, "source", "", "按来源过滤 (memory|online+generated)")
	historyCmd.Flags().StringVarP(&historyOutputType, "output", "o", "table", "输出格式 (table|json)")
}
