package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/pipeline"
)

var (
	askForceShort bool
	askOutputType string
)

// askCmd 命令行提问
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "直接在命令行提问",
	Long:  `走与 HTTP /ask 相同的问答流程，结果同样会写入知识库。`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logx.Error("Failed to close resources: %v", err)
			}
		}()

		resp, err := app.pipeline.Ask(cmd.Context(), pipeline.Request{
			Question:   strings.Join(args, " "),
			ForceShort: askForceShort,
		})
		if err != nil {
			return err
		}

		if askOutputType == "json" {
			data, _ := json.MarshalIndent(resp, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		meta := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
			Render(fmt.Sprintf("%s · %s · confidence %.2f", resp.Source, resp.AnswerType, resp.Confidence))
		fmt.Println(meta)
		fmt.Println()
		fmt.Println(resp.Answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVar(&askForceShort, "force-short", false, "强制返回简短答案")
	askCmd.Flags().StringVarP(&askOutputType, "output", "o", "text", "输出格式 (text|json)")
}
