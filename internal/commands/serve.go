package commands

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/ocr-statement-engine/internal/api"
)

func newServeCommand() *cobra.Command {
	var port string
	var static string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP extraction API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; flags win over environment.
			_ = godotenv.Load()

			if !cmd.Flags().Changed("port") {
				if env := os.Getenv("PORT"); env != "" {
					port = env
				}
			}

			app := fiber.New(fiber.Config{
				AppName:   "ocr-statement-engine " + api.Version,
				BodyLimit: 32 << 20,
			})
			app.Use(logger.New())

			h := &api.Handler{}
			h.RegisterRoutes(app)

			if static != "" {
				app.Static("/", static)
			}

			fmt.Printf("Listening on :%s\n", port)
			return app.Listen(":" + port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "8080", "port to listen on (PORT env var as fallback)")
	cmd.Flags().StringVar(&static, "static", "", "directory of static frontend files to serve")

	return cmd
}
