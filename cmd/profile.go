package cmd

import (
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriShell/internal/ai"
	"github.com/Rorical/RoriShell/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage API profiles",
	Long:  `Manage API profiles for different providers and configurations.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for name, profile := range cfg.Profiles {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Provider: %s\n", providerOrDefault(profile))
			fmt.Printf("    Model: %s\n", profile.Model)
			if profile.BaseURL != "" {
				fmt.Printf("    Base URL: %s\n", profile.BaseURL)
			}
			hasKey := "No"
			if profile.APIKey != "" {
				hasKey = "Yes"
			}
			fmt.Printf("    API Key: %s\n", hasKey)
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profile, exists := cfg.Profiles[args[0]]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", args[0])
		}

		fmt.Printf("Profile: %s\n", args[0])
		fmt.Printf("Provider: %s\n", providerOrDefault(profile))
		fmt.Printf("Model: %s\n", profile.Model)
		fmt.Printf("Base URL: %s\n", profile.BaseURL)
		hasKey := "Not set"
		if profile.APIKey != "" {
			hasKey = "Set (hidden for security)"
		}
		fmt.Printf("API Key: %s\n", hasKey)
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{Label: "Profile name"}
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		profile, err := promptProfile(config.Profile{Model: "gpt-4o-mini", Provider: config.DefaultProvider})
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := selectProfile(cfg, args, "Select profile to edit", false)
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		updated, err := promptProfile(profile)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = updated
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := selectProfile(cfg, args, "Select profile to delete", false)
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		if cfg.ActiveProfile == profileName {
			for name := range cfg.Profiles {
				if name != profileName {
					cfg.ActiveProfile = name
					break
				}
			}
			if len(cfg.Profiles) == 1 {
				cfg.ActiveProfile = "default"
				cfg.Profiles["default"] = config.Profile{
					Model:    "gpt-4o-mini",
					Provider: config.DefaultProvider,
				}
			}
		}

		delete(cfg.Profiles, profileName)
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := selectProfile(cfg, args, "Select profile to switch to", true)
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.ActiveProfile = profileName
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

// selectProfile resolves a profile name from args or an interactive menu.
func selectProfile(cfg *config.Config, args []string, label string, skipActive bool) string {
	if len(args) > 0 {
		return args[0]
	}

	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if skipActive && name == cfg.ActiveProfile {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}

	prompt := promptui.Select{Label: label, Items: names}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

// promptProfile walks through the profile fields interactively, seeded with
// the current values.
func promptProfile(current config.Profile) (config.Profile, error) {
	providers := make([]string, 0, len(ai.Factories()))
	for name := range ai.Factories() {
		providers = append(providers, name)
	}

	providerPrompt := promptui.Select{Label: "Provider", Items: providers}
	_, provider, err := providerPrompt.Run()
	if err != nil {
		return config.Profile{}, err
	}
	current.Provider = provider

	apiKeyPrompt := promptui.Prompt{Label: "API Key", Default: current.APIKey, Mask: '*'}
	if current.APIKey, err = apiKeyPrompt.Run(); err != nil {
		return config.Profile{}, err
	}

	modelPrompt := promptui.Prompt{Label: "Model", Default: current.Model}
	if current.Model, err = modelPrompt.Run(); err != nil {
		return config.Profile{}, err
	}

	baseURLPrompt := promptui.Prompt{Label: "Base URL (optional)", Default: current.BaseURL}
	if current.BaseURL, err = baseURLPrompt.Run(); err != nil {
		return config.Profile{}, err
	}

	return current, nil
}

func providerOrDefault(p config.Profile) string {
	if p.Provider == "" {
		return config.DefaultProvider
	}
	return p.Provider
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
