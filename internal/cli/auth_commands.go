package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/paisapal/paisa/internal/models"
	"github.com/paisapal/paisa/internal/repository"
)

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	signupCmd.Flags().String("name", "", "Display name")
	signupCmd.Flags().String("phone", "", "Phone number (used for the referral code)")
}

var signupCmd = &cobra.Command{
	Use:   "signup EMAIL",
	Short: "Create an account and start tracking",
	Args:  cobra.ExactArgs(1),
	RunE:  runSignup,
}

func runSignup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	name, _ := cmd.Flags().GetString("name")
	phone, _ := cmd.Flags().GetString("phone")

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	profile, err := a.provider.SignUp(ctx, args[0], password, name, phone)
	if err != nil {
		return err
	}

	if err := a.repo.SetUser(ctx, models.User{
		ID:           profile.ID,
		Name:         profile.Name,
		Email:        profile.Email,
		Phone:        profile.Phone,
		ReferralCode: models.NewReferralCode(profile.Phone),
		Balance:      decimal.Zero,
	}); err != nil {
		return err
	}

	fmt.Printf("Welcome, %s! Account created for %s.\n", profile.Name, profile.Email)
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Sign in to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	profile, err := a.provider.SignIn(ctx, args[0], password)
	if err != nil {
		return err
	}

	// Keep an existing local profile (balance, streak, points); only seed
	// a fresh one when none survives from a previous session.
	if user, ok := a.repo.User(); ok && user.ID == profile.ID {
		fmt.Printf("Welcome back, %s. Streak: %d days.\n", user.Name, user.StreakDays)
		return nil
	}

	if err := a.repo.SetUser(ctx, models.User{
		ID:      profile.ID,
		Name:    profile.Name,
		Email:   profile.Email,
		Phone:   profile.Phone,
		Balance: decimal.Zero,
	}); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s.\n", profile.Email)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear local data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.provider.SignOut(ctx); err != nil {
			return err
		}
		if err := a.repo.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Signed out. Local data cleared.")
		return nil
	},
}

// requireUser fetches the loaded profile or fails with a sign-in hint.
func requireUser(repo *repository.Repository) (models.User, error) {
	user, ok := repo.User()
	if !ok {
		return models.User{}, fmt.Errorf("no user signed in; run 'paisa login' or 'paisa signup' first")
	}
	return user, nil
}
