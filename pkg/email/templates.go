package email

import "fmt"

func passwordResetTemplate(resetURL string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #334155;">
	<h2>Set your password</h2>
	<p>An account has been prepared for you. Click the link below to choose your password:</p>
	<p><a href="%s" style="display: inline-block; padding: 10px 20px; background-color: #2563eb; color: #ffffff; text-decoration: none; border-radius: 6px;">Set Password</a></p>
	<p>This link expires in 1 hour. If you did not expect this email, you can ignore it.</p>
</body>
</html>`, resetURL)
}

func joinApprovedTemplate(name, companyName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #334155;">
	<h2>Welcome aboard, %s!</h2>
	<p>Your request to join <strong>%s</strong> has been approved. You can now log in with your account.</p>
</body>
</html>`, name, companyName)
}
