package auth

import "fmt"

// OTP email purposes.
const (
	purposeVerification  = "verification"
	purposePasswordReset = "password_reset"
)

func otpSubject(purpose string) string {
	if purpose == purposePasswordReset {
		return "BCAsprint: Password Reset Request"
	}
	return "BCAsprint: Verify Your Email"
}

func otpEmailBody(purpose, code string, ttlMinutes int) string {
	title := "Email Verification"
	action := "Verify your account"
	if purpose == purposePasswordReset {
		title = "Password Reset"
		action = "Reset your password"
	}

	return fmt.Sprintf(`<html>
	<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f4f4f4;">
		<div style="max-width: 600px; margin: auto; background: white; padding: 20px; border-radius: 10px; border: 1px solid #ddd;">
			<h2 style="color: #020617;">BCAsprint - %s</h2>
			<p>Dear User,</p>
			<p>You requested to %s.</p>
			<p>Your verification code is:</p>
			<div style="text-align: center; padding: 15px; background-color: #e2f0e9; border-radius: 5px; margin: 20px 0;">
				<span style="font-size: 28px; font-weight: bold; color: #10b981; letter-spacing: 2px;">%s</span>
			</div>
			<p style="font-size: 0.9em; color: #666;">This code is valid for %d minutes. Do not share it.</p>
			<p style="margin-top: 30px; font-size: 0.8em; color: #999;">BCAsprint Team</p>
		</div>
	</body>
</html>`, title, action, code, ttlMinutes)
}
