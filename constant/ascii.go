package constant

// AsciiArtLogo is the application's ASCII art banner shown on the root help screen.
const AsciiArtLogo = `
         __                              __
   _____/ /_________  ____ _____ ___  ____/ /__  _  __
  / ___/ __/ ___/ _ \/ __ ` + "`" + `/ __ ` + "`" + `__ \/ __  / _ \| |/_/
 (__  ) /_/ /  /  __/ /_/ / / / / / / /_/ /  __/>  <
/____/\__/_/   \___/\__,_/_/ /_/ /_/\__,_/\___/_/|_|
`
