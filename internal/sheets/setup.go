package sheets

// appsScript is deployed as a Google Apps Script web app and appends each
// posted submission to the bound sheet.
const appsScript = `function doPost(e) {
  try {
    var data = JSON.parse(e.postData.contents);
    var sheet = SpreadsheetApp.getActiveSheet();

    if (sheet.getLastRow() === 0) {
      sheet.appendRow([
        'Name',
        'Email',
        'Project Description',
        'Service',
        'Country',
        'Budget',
        'Custom Budget',
        'Timeline',
        'Submitted At'
      ]);
    }

    sheet.appendRow([
      data.name || '',
      data.email || '',
      data.project || '',
      data.service || '',
      data.country || '',
      data.budget || '',
      data.customBudget || '',
      data.timeline || '',
      data.submittedAt || new Date().toISOString()
    ]);

    return jsonOutput({ success: true, message: 'Submission recorded' });
  } catch (err) {
    return jsonOutput({ success: false, error: err.toString() });
  }
}

function doGet() {
  return jsonOutput({ message: 'Portfolio contact intake' });
}

function jsonOutput(body) {
  return ContentService
    .createTextOutput(JSON.stringify(body))
    .setMimeType(ContentService.MimeType.JSON);
}
`

// AppsScriptCode returns the web-app script used by web-hook mode.
func AppsScriptCode() string {
	return appsScript
}

// SetupInstructions lists the steps to deploy AppsScriptCode.
func SetupInstructions() []string {
	return []string{
		"1. Go to script.google.com and create a new project bound to your sheet",
		"2. Replace the default code with the provided script",
		"3. Deploy as a web app with execute access set to 'Anyone'",
		"4. Copy the web app URL and set it as GOOGLE_SHEETS_WEB_APP_URL",
		"5. Test the integration by submitting the contact form",
	}
}
