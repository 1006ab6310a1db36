package portal

import (
	"html/template"
	"io"
	"log"
)

var formTmpl = template.Must(template.New("form").Parse(formHTML))

const formHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Multisensor Setup</title>
<style>
body { font-family: monospace; max-width: 480px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
h2 { font-size: 1.1em; margin-top: 1.5em; }
label { display: block; margin: 0.8em 0 0.2em; }
input { width: 100%; box-sizing: border-box; padding: 4px; font-family: monospace; }
button { margin-top: 1.5em; padding: 8px 24px; }
</style>
</head>
<body>
<h1>Multisensor Setup</h1>
<form method="POST" action="/save">

<h2>Network</h2>
<label for="ssid">network SSID</label>
<input id="ssid" name="ssid" maxlength="32">
<label for="wifipass">network password</label>
<input id="wifipass" name="wifipass" type="password" maxlength="63">

<h2>MQTT</h2>
<label for="server">server name</label>
<input id="server" name="server" maxlength="39" value="{{.ServerName}}">
<label for="port">server port</label>
<input id="port" name="port" value="{{.ServerPort}}">
<label for="user">username</label>
<input id="user" name="user" maxlength="19" value="{{.Username}}">
<label for="pass">password</label>
<input id="pass" name="pass" type="password" maxlength="19" value="{{.Password}}">
<label for="topic">topic</label>
<input id="topic" name="topic" maxlength="59" value="{{.Topic}}">

<h2>Switch channels</h2>
<label for="prop0">property name for SW0</label>
<input id="prop0" name="prop0" maxlength="19" value="{{index .PropertyNames 0}}">
<label for="prop1">property name for SW1</label>
<input id="prop1" name="prop1" maxlength="19" value="{{index .PropertyNames 1}}">
<label for="prop2">property name for SW2</label>
<input id="prop2" name="prop2" maxlength="19" value="{{index .PropertyNames 2}}">
<label for="prop3">property name for SW3</label>
<input id="prop3" name="prop3" maxlength="19" value="{{index .PropertyNames 3}}">

<button type="submit">Save</button>
</form>
</body>
</html>
`

const savedHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Multisensor Setup</title></head>
<body style="font-family: monospace; max-width: 480px; margin: 2em auto;">
<h1>Configuration saved</h1>
<p>The module will now restart and connect to the configured network.</p>
</body>
</html>
`

func renderForm(w io.Writer, prefill Submission) {
	if err := formTmpl.Execute(w, prefill); err != nil {
		log.Printf("portal: render form: %v", err)
	}
}

func renderSaved(w io.Writer) {
	if _, err := io.WriteString(w, savedHTML); err != nil {
		log.Printf("portal: render saved: %v", err)
	}
}
