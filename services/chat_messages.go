package services

const helpText = `MultiLingo Agent - Help Guide

I can help you with:

Translation:
- "Translate 'hello' to Spanish"
- "How do you say 'thank you' in French?"
- "What is 'bonjour' in English?"

Language Detection:
- "What language is 'hola mundo'?"
- "Detect language of 'bonjour'"

String Analysis:
- "Analyze 'hello world'"
- "Is 'racecar' a palindrome?"

Other Commands:
- "List languages" - See all supported languages
- "Help" - Show this message

Just ask naturally! I'll understand.`

const greetingText = `Hello! I'm MultiLingo Agent!

I'm here to help you with:
- Translations (25+ languages)
- Language detection
- String analysis

Try asking me:
- "Translate 'hello' to Spanish"
- "What language is 'ciao'?"
- "Analyze 'racecar'"

Type "help" to see all commands!`

const unknownText = `I'm not sure what you want me to do.

Here are some things I can help with:

Translation:
"Translate 'hello' to Spanish"

Language Detection:
"What language is 'bonjour'?"

String Analysis:
"Analyze 'hello world'"

Type "help" for more examples!`
