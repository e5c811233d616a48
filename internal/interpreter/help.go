package interpreter

// HelpMessage is the static multi-section help text. Returning it never
// touches a subprocess.
func HelpMessage() string {
	return `
🧠 NeuralForge Natural Language Interface

Available Commands:

📁 File Management:
• "Organize my files" or "Clean up my downloads"
• "Sort my desktop" or "Arrange my documents"

🧠 System Monitoring:
• "Monitor my system" or "Check my computer status"
• "Show neural engine status" or "How is my system doing?"

💾 AI Memory:
• "Show my AI memory" or "Check my conversations"
• "AI memory status" or "Conversation history"

🌐 Web Scraping:
• "Scrape the website https://example.com"
• "Extract data from the page" or "Web scrape example.com"

📧 Email Automation:
• "Send an email to user@example.com"
• "Setup email automation" or "Automate my emails"

⏰ Task Scheduling:
• "Schedule a task for tomorrow" or "Remind me to check files"
• "Set up a reminder for 3pm" or "Automate this process"

📊 Analytics:
• "Show me analytics" or "Performance report"
• "How many files have I organized?" or "Usage statistics"

❓ Help:
• "Help" or "What can you do?" or "Commands"

Examples:
• "Organize my downloads folder"
• "Monitor my system performance"
• "Scrape data from https://news.com"
• "Send an email to john@company.com"
• "Schedule a backup task for tonight"
• "Show me my usage analytics"
`
}
